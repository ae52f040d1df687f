package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	VariantName string `json:"variant_name"`
}

// GetCart returns the visitor's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	view, err := ctrl.cartService.Get(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		respondServiceError(c, err, "get cart")
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddToCart adds one unit of a product, or of one of its variants
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	visitor := middleware.GetVisitorID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Informe o produto")
		return
	}

	view, err := ctrl.cartService.Add(c.Request.Context(), visitor, req.ProductID, req.VariantName)
	if err != nil {
		respondServiceError(c, err, "add product to cart")
		return
	}

	log.Info("Product added to cart", map[string]interface{}{
		"visitor":    visitor,
		"product_id": req.ProductID,
		"variant":    req.VariantName,
	})

	c.JSON(http.StatusOK, view)
}

// RemoveFromCart removes the line for a product and variant. An empty
// variant query matches only the line without a variant.
// DELETE /api/v1/cart/items/:product_id?variant=
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	visitor := middleware.GetVisitorID(c)
	productID := c.Param("product_id")
	variant := c.Query("variant")

	view, err := ctrl.cartService.Remove(c.Request.Context(), visitor, productID, variant)
	if err != nil {
		respondServiceError(c, err, "remove cart item")
		return
	}

	log.Info("Cart item removed", map[string]interface{}{
		"visitor":    visitor,
		"product_id": productID,
		"variant":    variant,
	})

	c.JSON(http.StatusOK, view)
}

// ClearCart DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.cartService.Clear(c.Request.Context(), middleware.GetVisitorID(c)); err != nil {
		respondServiceError(c, err, "clear cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Carrinho esvaziado",
	})
}

// Checkout builds the WhatsApp order message and deep link. The cart is kept.
// GET /api/v1/cart/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	visitor := middleware.GetVisitorID(c)

	checkout, err := ctrl.cartService.Checkout(c.Request.Context(), visitor)
	if err != nil {
		respondServiceError(c, err, "checkout")
		return
	}

	log.Info("Checkout link generated", map[string]interface{}{
		"visitor": visitor,
		"total":   checkout.Total,
	})

	c.JSON(http.StatusOK, checkout)
}
