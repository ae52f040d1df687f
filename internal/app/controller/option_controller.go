package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
)

type OptionController struct {
	optionService service.OptionService
}

func NewOptionController(optionService service.OptionService) *OptionController {
	return &OptionController{
		optionService: optionService,
	}
}

type BasePriceRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// GetPools returns the configurator options grouped by pool
// GET /api/v1/options
func (ctrl *OptionController) GetPools(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.optionService.Pools())
}

// GetPool GET /api/v1/options/:type
func (ctrl *OptionController) GetPool(c *gin.Context) {
	optionType := model.OptionType(c.Param("type"))
	if !optionType.IsValid() {
		apperrors.BadRequest(c, apperrors.OptionInvalidType, "Tipo de opção inválido")
		return
	}

	options := ctrl.optionService.Pool(optionType)
	c.JSON(http.StatusOK, gin.H{
		"type":    optionType,
		"options": options,
		"count":   len(options),
	})
}

// ListOptions GET /api/v1/admin/options
func (ctrl *OptionController) ListOptions(c *gin.Context) {
	options := ctrl.optionService.List()
	c.JSON(http.StatusOK, gin.H{
		"options": options,
		"count":   len(options),
	})
}

// UpsertOption creates the option, or replaces it when the id already exists
// POST /api/v1/admin/options
func (ctrl *OptionController) UpsertOption(c *gin.Context) {
	ctrl.upsert(c, "")
}

// UpdateOption PUT /api/v1/admin/options/:id
func (ctrl *OptionController) UpdateOption(c *gin.Context) {
	id := c.Param("id")
	if _, err := ctrl.optionService.Get(id); err != nil {
		respondServiceError(c, err, "update option")
		return
	}
	ctrl.upsert(c, id)
}

func (ctrl *OptionController) upsert(c *gin.Context, id string) {
	log := middleware.GetLoggerFromContext(c)

	var req service.OptionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid option request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da opção inválidos")
		return
	}
	if id != "" {
		req.ID = id
	}

	option, err := ctrl.optionService.Upsert(req)
	if err != nil {
		respondServiceError(c, err, "save option")
		return
	}

	log.Info("Option saved", map[string]interface{}{
		"option_id": option.ID,
		"type":      option.Type,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Opção salva",
		"option":  option,
	})
}

// DeleteOption DELETE /api/v1/admin/options/:id?confirm=true
func (ctrl *OptionController) DeleteOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.optionService.Delete(id, confirmed(c)); err != nil {
		respondServiceError(c, err, "delete option")
		return
	}

	log.Info("Option deleted", map[string]interface{}{
		"option_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Opção excluída",
	})
}

// GetBasePrice GET /api/v1/options/base-price
func (ctrl *OptionController) GetBasePrice(c *gin.Context) {
	value, err := ctrl.optionService.BasePrice()
	if err != nil {
		respondServiceError(c, err, "get base price")
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": value})
}

// SetBasePrice PUT /api/v1/admin/options/base-price
func (ctrl *OptionController) SetBasePrice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BasePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Informe o preço base")
		return
	}

	value, err := ctrl.optionService.SetBasePrice(*req.Value)
	if err != nil {
		respondServiceError(c, err, "update base price")
		return
	}

	log.Info("Base rosary price updated", map[string]interface{}{
		"value": value,
	})

	c.JSON(http.StatusOK, gin.H{"value": value})
}
