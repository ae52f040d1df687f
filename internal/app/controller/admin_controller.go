package controller

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/optimistic"
)

type AdminController struct {
	collections       map[string]service.SyncStatusProvider
	productService    service.ProductService
	lowStockThreshold int
}

// NewAdminController takes the optimistic collections keyed by the name
// reported in sync-status.
func NewAdminController(
	collections map[string]service.SyncStatusProvider,
	productService service.ProductService,
	lowStockThreshold int,
) *AdminController {
	return &AdminController{
		collections:       collections,
		productService:    productService,
		lowStockThreshold: lowStockThreshold,
	}
}

type CollectionStatus struct {
	Collection string `json:"collection"`
	optimistic.SyncState
}

// GetSyncStatus reports the last write outcome of every admin collection
// GET /api/v1/admin/sync-status
func (ctrl *AdminController) GetSyncStatus(c *gin.Context) {
	names := make([]string, 0, len(ctrl.collections))
	for name := range ctrl.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	statuses := make([]CollectionStatus, 0, len(names))
	failed := false
	for _, name := range names {
		state := ctrl.collections[name].SyncStatus()
		if state.Status == optimistic.StatusFailed {
			failed = true
		}
		statuses = append(statuses, CollectionStatus{Collection: name, SyncState: state})
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": statuses,
		"has_failure": failed,
	})
}

// GetLowStock GET /api/v1/admin/products/low-stock?threshold=
func (ctrl *AdminController) GetLowStock(c *gin.Context) {
	threshold := ctrl.lowStockThreshold
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Limite de estoque inválido")
			return
		}
		threshold = v
	}

	products := ctrl.productService.LowStock(threshold)
	c.JSON(http.StatusOK, gin.H{
		"threshold": threshold,
		"products":  products,
		"count":     len(products),
	})
}
