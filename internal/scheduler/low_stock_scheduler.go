package scheduler

import (
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	"github.com/minhasantafonte/santafonte-backend/internal/metrics"
	"github.com/minhasantafonte/santafonte-backend/internal/websocket"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// LowStockScheduler reports products running out of stock on a cron schedule
type LowStockScheduler struct {
	cron           *cron.Cron
	productService service.ProductService
	broadcaster    service.BoardBroadcaster
	threshold      int
	schedule       string
}

// NewLowStockScheduler builds the digest job. broadcaster may be nil.
func NewLowStockScheduler(
	productService service.ProductService,
	broadcaster service.BoardBroadcaster,
	threshold int,
	schedule string,
) *LowStockScheduler {
	return &LowStockScheduler{
		cron:           cron.New(),
		productService: productService,
		broadcaster:    broadcaster,
		threshold:      threshold,
		schedule:       schedule,
	}
}

// Start registers the digest and starts the cron runner
func (s *LowStockScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled low stock digest", nil)
		s.RunOnce()
	})
	if err != nil {
		logger.Error("Failed to add cron job for low stock digest", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Low stock scheduler started", map[string]interface{}{
		"schedule":  s.schedule,
		"threshold": s.threshold,
	})
	return nil
}

// RunOnce computes the digest, updates the gauge and notifies connected admins
func (s *LowStockScheduler) RunOnce() []model.Product {
	low := s.productService.LowStock(s.threshold)
	metrics.SetLowStockProducts(len(low))

	if len(low) == 0 {
		logger.Info("No products below stock threshold", map[string]interface{}{
			"threshold": s.threshold,
		})
		return low
	}

	type entry struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	digest := make([]entry, 0, len(low))
	for _, p := range low {
		digest = append(digest, entry{ID: p.ID, Name: p.Name, Stock: p.Stock})
	}

	logger.Warn("Products below stock threshold", map[string]interface{}{
		"threshold": s.threshold,
		"count":     len(low),
	})
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(websocket.EventStockLow, digest)
	}
	return low
}

// Stop stops the cron runner
func (s *LowStockScheduler) Stop() {
	logger.Info("Stopping low stock scheduler...", nil)
	s.cron.Stop()
	logger.Info("Low stock scheduler stopped", nil)
}
