package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	"github.com/minhasantafonte/santafonte-backend/internal/catalog"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
)

const defaultFeaturedLimit = 3

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// GetCatalog returns one page of the storefront catalog
// GET /api/v1/products?search=&category=&sort=&page=
func (ctrl *ProductController) GetCatalog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Página inválida")
		return
	}

	params := catalog.Params{
		SearchTerm: c.Query("search"),
		Category:   model.ProductCategory(c.Query("category")),
		Sort:       catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortRecent))),
	}
	if params.Category != "" && params.Category != model.CategoryAll && !params.Category.IsValid() {
		apperrors.BadRequest(c, apperrors.ProductInvalidCategory, "Categoria inválida")
		return
	}

	result := ctrl.productService.Catalog(params, page)

	log.Debug("Catalog page served", map[string]interface{}{
		"search":      params.SearchTerm,
		"category":    params.Category,
		"sort":        params.Sort,
		"page":        result.Page,
		"total_items": result.TotalItems,
	})

	c.JSON(http.StatusOK, result)
}

// GetFeatured returns the products highlighted on the home page
// GET /api/v1/products/featured?limit=
func (ctrl *ProductController) GetFeatured(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultFeaturedLimit)))
	if err != nil || limit < 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Limite inválido")
		return
	}

	products := ctrl.productService.Featured(limit)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetCategories GET /api/v1/products/categories
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": ctrl.productService.Categories(),
	})
}

// GetProductByID GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.productService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"gallery": catalog.Gallery(*product),
	})
}

// ListProducts returns the full admin list without pagination
// GET /api/v1/admin/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	products := ctrl.productService.List()
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do produto inválidos")
		return
	}

	product, err := ctrl.productService.Create(req)
	if err != nil {
		respondServiceError(c, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produto cadastrado",
		"product": product,
	})
}

// UpdateProduct merges the given fields into the product
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req service.ProductPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do produto inválidos")
		return
	}

	product, err := ctrl.productService.Update(id, req)
	if err != nil {
		respondServiceError(c, err, "update product")
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto atualizado",
		"product": product,
	})
}

// AdjustStock PATCH /api/v1/admin/products/:id/stock
func (ctrl *ProductController) AdjustStock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Informe a variação de estoque")
		return
	}

	product, err := ctrl.productService.AdjustStock(id, req.Delta)
	if err != nil {
		respondServiceError(c, err, "update product stock")
		return
	}

	log.Info("Product stock adjusted", map[string]interface{}{
		"product_id": product.ID,
		"delta":      req.Delta,
		"stock":      product.Stock,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct DELETE /api/v1/admin/products/:id?confirm=true
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.productService.Delete(id, confirmed(c)); err != nil {
		respondServiceError(c, err, "delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto excluído",
	})
}
