package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
)

type CustomizerController struct {
	customizerService service.CustomizerService
}

func NewCustomizerController(customizerService service.CustomizerService) *CustomizerController {
	return &CustomizerController{
		customizerService: customizerService,
	}
}

type SelectOptionRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}

type QuoteRequest struct {
	OptionIDs []string `json:"option_ids"`
}

// GetState GET /api/v1/customizer
func (ctrl *CustomizerController) GetState(c *gin.Context) {
	view, err := ctrl.customizerService.State(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		respondServiceError(c, err, "get customizer")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Select picks an option for the current step and advances the wizard
// POST /api/v1/customizer/select
func (ctrl *CustomizerController) Select(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	visitor := middleware.GetVisitorID(c)

	var req SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Escolha uma opção")
		return
	}

	view, err := ctrl.customizerService.Select(c.Request.Context(), visitor, req.OptionID)
	if err != nil {
		respondServiceError(c, err, "select option")
		return
	}

	log.Debug("Customizer option selected", map[string]interface{}{
		"visitor":   visitor,
		"option_id": req.OptionID,
		"state":     view.State,
	})

	c.JSON(http.StatusOK, view)
}

// Back POST /api/v1/customizer/back
func (ctrl *CustomizerController) Back(c *gin.Context) {
	view, err := ctrl.customizerService.Back(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		respondServiceError(c, err, "customizer back")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Reset POST /api/v1/customizer/reset
func (ctrl *CustomizerController) Reset(c *gin.Context) {
	view, err := ctrl.customizerService.Reset(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		respondServiceError(c, err, "customizer reset")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Quote prices a selection without touching the visitor's wizard
// POST /api/v1/customizer/quote
func (ctrl *CustomizerController) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Seleção inválida")
		return
	}

	quote, err := ctrl.customizerService.Quote(req.OptionIDs)
	if err != nil {
		respondServiceError(c, err, "quote option")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Commit adds the configured rosary to the cart
// POST /api/v1/customizer/commit
func (ctrl *CustomizerController) Commit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	visitor := middleware.GetVisitorID(c)

	item, cartView, err := ctrl.customizerService.Commit(c.Request.Context(), visitor)
	if err != nil {
		respondServiceError(c, err, "commit customizer")
		return
	}

	log.Info("Custom rosary committed", map[string]interface{}{
		"visitor": visitor,
		"item_id": item.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Terço personalizado adicionado ao carrinho",
		"item":    item,
		"cart":    cartView,
	})
}
