package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
)

// respondServiceError maps the service sentinels shared by every controller
// to the error envelope. Anything unknown goes through the gorm/network parser.
func respondServiceError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Warn("Validation failed", map[string]interface{}{
			"context": context,
			"fields":  validationErr.Fields,
		})
		apperrors.RespondWithValidationError(c, validationErr.Fields)
	case errors.Is(err, service.ErrConfirmationRequired):
		apperrors.ConfirmationRequired(c)
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.ProductVariantNotFound, "Variação não encontrada")
	case errors.Is(err, service.ErrOptionNotFound):
		apperrors.NotFound(c, apperrors.OptionNotFound, "Opção não encontrada")
	case errors.Is(err, service.ErrSaleNotFound):
		apperrors.NotFound(c, apperrors.SaleNotFound, "Venda não encontrada")
	case errors.Is(err, service.ErrArticleNotFound):
		apperrors.NotFound(c, apperrors.ArticleNotFound, "Artigo não encontrado")
	case errors.Is(err, service.ErrInvalidSaleStatus):
		apperrors.BadRequest(c, apperrors.SaleInvalidStatus, "Status de venda inválido")
	case errors.Is(err, service.ErrOutOfStock):
		apperrors.Conflict(c, apperrors.CartOutOfStock, "Produto sem estoque")
	case errors.Is(err, service.ErrCartLineNotFound):
		apperrors.NotFound(c, apperrors.CartLineNotFound, "Item não encontrado no carrinho")
	case errors.Is(err, service.ErrCartEmpty):
		apperrors.BadRequest(c, apperrors.CartEmpty, "Seu carrinho está vazio")
	case errors.Is(err, service.ErrCustomizerWrongStep):
		apperrors.Conflict(c, apperrors.CustomizerWrongStep, "Ação não permitida nesta etapa do personalizador")
	default:
		log.Error("Request failed", err, map[string]interface{}{
			"context": context,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}

// confirmed reads the ?confirm=true flag required by deletes.
func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}
