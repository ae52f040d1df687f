package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/cart"
	"github.com/minhasantafonte/santafonte-backend/internal/metrics"
	"github.com/minhasantafonte/santafonte-backend/internal/optimistic"
	"github.com/minhasantafonte/santafonte-backend/internal/spreadsheet"
	"github.com/minhasantafonte/santafonte-backend/internal/websocket"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"github.com/minhasantafonte/santafonte-backend/pkg/mailer"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSaleNotFound      = errors.New("sale entry not found")
	ErrInvalidSaleStatus = errors.New("invalid sale status")
)

// SaleNotifier sends the "new sale" message. *mailer.Client implements it.
type SaleNotifier interface {
	NotifySale(ctx context.Context, n mailer.SaleNotification) error
}

// BoardBroadcaster pushes board changes to connected admins. *websocket.Hub
// implements it.
type BoardBroadcaster interface {
	Broadcast(eventType string, payload interface{})
}

type SaleInput struct {
	Date        string  `json:"date" validate:"omitempty,datetime=02/01/2006"`
	Description string  `json:"description" validate:"required"`
	Value       float64 `json:"value" validate:"gte=0"`
}

type SalePatch struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Value       *float64 `json:"value"`
}

// NotificationResult reports the best-effort notification of a new sale.
type NotificationResult struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

// SaleCreateResult is a created entry plus how its notification went. A
// failed notification never undoes the entry.
type SaleCreateResult struct {
	Sale         *model.SaleEntry   `json:"sale"`
	Notification NotificationResult `json:"notification"`
}

type BoardColumn struct {
	Status  model.SaleStatus  `json:"status"`
	Title   string            `json:"title"`
	Entries []model.SaleEntry `json:"entries"`
	Total   float64           `json:"total"`
}

type Board struct {
	Columns []BoardColumn `json:"columns"`
}

type SaleService interface {
	Load() error
	List() []model.SaleEntry
	Board() Board
	Create(ctx context.Context, input SaleInput) (*SaleCreateResult, error)
	Update(id string, patch SalePatch) (*model.SaleEntry, error)
	Move(id string, status model.SaleStatus) (*model.SaleEntry, error)
	Advance(id string) (*model.SaleEntry, error)
	Retreat(id string) (*model.SaleEntry, error)
	Delete(id string, confirmed bool) error
	Export(w io.Writer) error
	SyncStatus() optimistic.SyncState
}

type saleService struct {
	saleRepo    repository.SaleRepository
	notifier    SaleNotifier
	broadcaster BoardBroadcaster
	sales       *optimistic.Collection[model.SaleEntry]
	now         func() time.Time
}

// NewSaleService builds the ledger service. notifier and broadcaster may be nil.
func NewSaleService(saleRepo repository.SaleRepository, notifier SaleNotifier, broadcaster BoardBroadcaster) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		notifier:    notifier,
		broadcaster: broadcaster,
		sales: optimistic.NewCollection("sales", func(s model.SaleEntry) string {
			return s.ID
		}),
		now: time.Now,
	}
}

func (s *saleService) Load() error {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		logger.Error("Failed to load sales", err)
		return err
	}
	s.sales.Replace(sales)

	logger.Info("Sales loaded", map[string]interface{}{
		"count": len(sales),
	})
	return nil
}

func (s *saleService) List() []model.SaleEntry {
	return s.sales.List()
}

// Board groups the ledger into the three production columns in status order.
func (s *saleService) Board() Board {
	board := Board{Columns: make([]BoardColumn, len(model.SaleStatuses))}
	index := make(map[model.SaleStatus]int, len(model.SaleStatuses))
	for i, status := range model.SaleStatuses {
		board.Columns[i] = BoardColumn{Status: status, Title: status.Label(), Entries: []model.SaleEntry{}}
		index[status] = i
	}

	for _, sale := range s.sales.List() {
		i, ok := index[sale.Status]
		if !ok {
			continue
		}
		board.Columns[i].Entries = append(board.Columns[i].Entries, sale)
	}
	for i := range board.Columns {
		total := decimal.Zero
		for _, sale := range board.Columns[i].Entries {
			total = total.Add(decimal.NewFromFloat(sale.Value))
		}
		board.Columns[i].Total = total.Round(2).InexactFloat64()
	}
	return board
}

// Create records a sale as pending and then notifies the shop. The
// notification outcome is returned alongside the entry.
func (s *saleService) Create(ctx context.Context, input SaleInput) (*SaleCreateResult, error) {
	if err := checkStruct(input).err(); err != nil {
		return nil, err
	}

	now := s.now()
	sale := model.SaleEntry{
		ID:          uuid.New().String(),
		Date:        input.Date,
		Description: input.Description,
		Value:       input.Value,
		Status:      model.SalePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if sale.Date == "" {
		sale.Date = now.Format(model.SaleDateLayout)
	}

	err := s.sales.Upsert(sale, func(e model.SaleEntry) error {
		return s.saleRepo.Create(&e)
	})
	recordWrite(s.sales.Name(), err)
	if err != nil {
		logger.Error("Failed to create sale entry", err, map[string]interface{}{
			"sale_id": sale.ID,
		})
		return nil, err
	}

	logger.Info("Sale entry created", map[string]interface{}{
		"sale_id": sale.ID,
		"value":   sale.Value,
	})
	s.broadcast(websocket.EventSaleCreated, sale)

	return &SaleCreateResult{
		Sale:         &sale,
		Notification: s.notify(ctx, sale),
	}, nil
}

func (s *saleService) notify(ctx context.Context, sale model.SaleEntry) NotificationResult {
	if s.notifier == nil {
		metrics.RecordNotification("disabled")
		return NotificationResult{Error: "notificações desativadas"}
	}

	err := s.notifier.NotifySale(ctx, mailer.SaleNotification{
		Description: sale.Description,
		Value:       cart.FormatBRL(sale.Value),
		Date:        sale.Date,
	})
	if err != nil {
		metrics.RecordNotification("failed")
		logger.Warn("Sale notification failed", map[string]interface{}{
			"sale_id": sale.ID,
			"error":   err.Error(),
		})
		return NotificationResult{Error: err.Error()}
	}

	metrics.RecordNotification("sent")
	return NotificationResult{Sent: true}
}

func (s *saleService) Update(id string, patch SalePatch) (*model.SaleEntry, error) {
	current, ok := s.sales.Get(id)
	if !ok {
		return nil, ErrSaleNotFound
	}

	input := SaleInput{Date: current.Date, Description: current.Description, Value: current.Value}
	if patch.Date != nil {
		input.Date = *patch.Date
	}
	if patch.Description != nil {
		input.Description = *patch.Description
	}
	if patch.Value != nil {
		input.Value = *patch.Value
	}
	if err := checkStruct(input).err(); err != nil {
		return nil, err
	}

	return s.write(id, func(e model.SaleEntry) model.SaleEntry {
		e.Date = input.Date
		e.Description = input.Description
		e.Value = input.Value
		return e
	}, func(e model.SaleEntry) error {
		return s.saleRepo.Update(&e)
	})
}

// Move sets any status on the entry; the board allows every transition.
func (s *saleService) Move(id string, status model.SaleStatus) (*model.SaleEntry, error) {
	if !status.IsValid() {
		return nil, ErrInvalidSaleStatus
	}
	return s.write(id, func(e model.SaleEntry) model.SaleEntry {
		e.Status = status
		return e
	}, func(e model.SaleEntry) error {
		return s.saleRepo.UpdateStatus(e.ID, e.Status)
	})
}

// Advance moves the entry one column right, staying put on the last column.
func (s *saleService) Advance(id string) (*model.SaleEntry, error) {
	return s.step(id, 1)
}

// Retreat moves the entry one column left, staying put on the first column.
func (s *saleService) Retreat(id string) (*model.SaleEntry, error) {
	return s.step(id, -1)
}

func (s *saleService) step(id string, delta int) (*model.SaleEntry, error) {
	return s.write(id, func(e model.SaleEntry) model.SaleEntry {
		e.Status = shiftStatus(e.Status, delta)
		return e
	}, func(e model.SaleEntry) error {
		return s.saleRepo.UpdateStatus(e.ID, e.Status)
	})
}

// shiftStatus moves delta columns along the board, clamped to its ends.
func shiftStatus(status model.SaleStatus, delta int) model.SaleStatus {
	next := 0
	for i, st := range model.SaleStatuses {
		if st == status {
			next = i + delta
		}
	}
	next = max(0, min(next, len(model.SaleStatuses)-1))
	return model.SaleStatuses[next]
}

func (s *saleService) write(id string, fn func(model.SaleEntry) model.SaleEntry, persist func(model.SaleEntry) error) (*model.SaleEntry, error) {
	updated, err := s.sales.Update(id, func(e model.SaleEntry) (model.SaleEntry, error) {
		e = fn(e)
		e.UpdatedAt = s.now()
		return e, nil
	}, persist)
	recordWrite(s.sales.Name(), err)
	if err != nil {
		return nil, s.mapError(err, id)
	}

	logger.Info("Sale entry updated", map[string]interface{}{
		"sale_id": id,
		"status":  updated.Status,
	})
	s.broadcast(websocket.EventSaleUpdated, updated)
	return &updated, nil
}

func (s *saleService) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	err := s.sales.Remove(id, s.saleRepo.Delete)
	recordWrite(s.sales.Name(), err)
	if err != nil {
		return s.mapError(err, id)
	}

	logger.Info("Sale entry deleted", map[string]interface{}{
		"sale_id": id,
	})
	s.broadcast(websocket.EventSaleDeleted, map[string]string{"id": id})
	return nil
}

// Export writes the ledger as an XLSX workbook.
func (s *saleService) Export(w io.Writer) error {
	sales := s.sales.List()
	if err := spreadsheet.WriteSales(w, sales); err != nil {
		logger.Error("Failed to export sales", err, map[string]interface{}{
			"count": len(sales),
		})
		return err
	}
	return nil
}

func (s *saleService) SyncStatus() optimistic.SyncState {
	return s.sales.Status()
}

func (s *saleService) broadcast(eventType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(eventType, payload)
	}
}

func (s *saleService) mapError(err error, id string) error {
	if errors.Is(err, optimistic.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSaleNotFound
	}
	logger.Error("Sale write failed", err, map[string]interface{}{
		"sale_id": id,
	})
	return err
}
