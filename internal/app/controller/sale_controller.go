package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SaleController struct {
	saleService service.SaleService
}

func NewSaleController(saleService service.SaleService) *SaleController {
	return &SaleController{
		saleService: saleService,
	}
}

type MoveSaleRequest struct {
	Status model.SaleStatus `json:"status" binding:"required"`
}

// ListSales GET /api/v1/admin/sales
func (ctrl *SaleController) ListSales(c *gin.Context) {
	sales := ctrl.saleService.List()
	c.JSON(http.StatusOK, gin.H{
		"sales": sales,
		"count": len(sales),
	})
}

// GetBoard returns the production board columns in order
// GET /api/v1/admin/sales/board
func (ctrl *SaleController) GetBoard(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.saleService.Board())
}

// CreateSale records a sale in the pending column. A failed notification is
// reported next to the created entry.
// POST /api/v1/admin/sales
func (ctrl *SaleController) CreateSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.SaleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid sale request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da venda inválidos")
		return
	}

	result, err := ctrl.saleService.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create sale")
		return
	}

	if !result.Notification.Sent {
		log.Warn("Sale created without notification", map[string]interface{}{
			"sale_id": result.Sale.ID,
			"error":   result.Notification.Error,
		})
	}

	c.JSON(http.StatusCreated, result)
}

// UpdateSale PUT /api/v1/admin/sales/:id
func (ctrl *SaleController) UpdateSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req service.SalePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da venda inválidos")
		return
	}

	sale, err := ctrl.saleService.Update(id, req)
	if err != nil {
		respondServiceError(c, err, "update sale")
		return
	}

	log.Info("Sale updated", map[string]interface{}{
		"sale_id": sale.ID,
	})

	c.JSON(http.StatusOK, gin.H{"sale": sale})
}

// MoveSale sets the board column directly
// PATCH /api/v1/admin/sales/:id/status
func (ctrl *SaleController) MoveSale(c *gin.Context) {
	var req MoveSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Informe o status")
		return
	}

	sale, err := ctrl.saleService.Move(c.Param("id"), req.Status)
	ctrl.respondMoved(c, sale, err)
}

// AdvanceSale POST /api/v1/admin/sales/:id/advance
func (ctrl *SaleController) AdvanceSale(c *gin.Context) {
	sale, err := ctrl.saleService.Advance(c.Param("id"))
	ctrl.respondMoved(c, sale, err)
}

// RetreatSale POST /api/v1/admin/sales/:id/retreat
func (ctrl *SaleController) RetreatSale(c *gin.Context) {
	sale, err := ctrl.saleService.Retreat(c.Param("id"))
	ctrl.respondMoved(c, sale, err)
}

func (ctrl *SaleController) respondMoved(c *gin.Context, sale *model.SaleEntry, err error) {
	if err != nil {
		respondServiceError(c, err, "update sale status")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Sale moved", map[string]interface{}{
		"sale_id": sale.ID,
		"status":  sale.Status,
	})

	c.JSON(http.StatusOK, gin.H{"sale": sale})
}

// DeleteSale DELETE /api/v1/admin/sales/:id?confirm=true
func (ctrl *SaleController) DeleteSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.saleService.Delete(id, confirmed(c)); err != nil {
		respondServiceError(c, err, "delete sale")
		return
	}

	log.Info("Sale deleted", map[string]interface{}{
		"sale_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Venda excluída",
	})
}

// ExportSales downloads the sales ledger as a spreadsheet
// GET /api/v1/admin/sales/export
func (ctrl *SaleController) ExportSales(c *gin.Context) {
	var buf bytes.Buffer
	if err := ctrl.saleService.Export(&buf); err != nil {
		respondServiceError(c, err, "export sales")
		return
	}

	filename := fmt.Sprintf("vendas-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
