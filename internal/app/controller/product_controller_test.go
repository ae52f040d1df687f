package controller

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductControllerTest(t *testing.T) *testEnv {
	env := setupControllerTest(t)
	ctrl := NewProductController(env.products)

	env.router.GET("/products", ctrl.GetCatalog)
	env.router.GET("/products/featured", ctrl.GetFeatured)
	env.router.GET("/products/categories", ctrl.GetCategories)
	env.router.GET("/products/:id", ctrl.GetProductByID)
	env.router.GET("/admin/products", ctrl.ListProducts)
	env.router.POST("/admin/products", ctrl.CreateProduct)
	env.router.PUT("/admin/products/:id", ctrl.UpdateProduct)
	env.router.PATCH("/admin/products/:id/stock", ctrl.AdjustStock)
	env.router.DELETE("/admin/products/:id", ctrl.DeleteProduct)
	return env
}

func validProductBody() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Terço de Cristal",
		"category":    "Terços",
		"price":       70.0,
		"description": "Contas de cristal lapidado",
		"images":      []string{"https://example.com/terco.jpg"},
		"stock":       4,
	}
}

func TestProductController_GetCatalog_FiltersByCategory(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodGet, "/products?category="+url.QueryEscape("Terços"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(1), response["total_items"])
	items := response["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].(map[string]interface{})["id"])
}

func TestProductController_GetCatalog_SearchAndSort(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodGet, "/products?search=B%C3%8DBLIA&sort=price_asc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	items := response["items"].([]interface{})
	require.Len(t, items, 2)
	// "Porta Bíblia" 98.50 before "Bíblia Sagrada Luxo" 120.00
	assert.Equal(t, "6", items[0].(map[string]interface{})["id"])
	assert.Equal(t, "3", items[1].(map[string]interface{})["id"])
}

func TestProductController_GetCatalog_Pagination(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodGet, "/products?page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(6), response["total_items"])
	assert.Equal(t, float64(1), response["total_pages"])
	assert.Equal(t, float64(8), response["page_size"])
	assert.Len(t, response["items"], 6)

	w = env.do(t, http.MethodGet, "/products?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["items"])
}

func TestProductController_GetCatalog_HugePageIsEmpty(t *testing.T) {
	env := setupProductControllerTest(t)

	for _, page := range []string{"1152921504606846977", "2305843009213693953", "9223372036854775807"} {
		w := env.do(t, http.MethodGet, "/products?page="+page, nil)
		require.Equal(t, http.StatusOK, w.Code, "page %s", page)
		assert.Empty(t, decode(t, w)["items"], "page %s", page)
	}
}

func TestProductController_GetFeatured_HugeLimit(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodGet, "/products/featured?limit=4611686018427387904", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["count"])
}

func TestProductController_GetCatalog_RejectsBadQuery(t *testing.T) {
	env := setupProductControllerTest(t)

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"unknown category", "?category=Livros", "PRODUCT_INVALID_CATEGORY"},
		{"non numeric page", "?page=abc", "VALIDATION_INVALID_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/products"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["error"])
		})
	}
}

func TestProductController_GetFeaturedAndCategories(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodGet, "/products/featured", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["count"])

	w = env.do(t, http.MethodGet, "/products/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	categories := decode(t, w)["categories"].([]interface{})
	require.Len(t, categories, 8)
	assert.Equal(t, "Todos", categories[0])
}

func TestProductController_GetProductByID(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	product := response["product"].(map[string]interface{})
	assert.Equal(t, "Nossa Senhora Aparecida 30cm", product["name"])
	assert.NotEmpty(t, response["gallery"])

	w = env.do(t, http.MethodGet, "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode(t, w)["error"])
}

func TestProductController_CreateProduct(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodPost, "/admin/products", validProductBody())

	require.Equal(t, http.StatusCreated, w.Code)
	product := decode(t, w)["product"].(map[string]interface{})
	assert.NotEmpty(t, product["id"])
	assert.Equal(t, float64(4), product["stock"])
	assert.Len(t, env.products.List(), 7)
}

func TestProductController_CreateProduct_ValidationError(t *testing.T) {
	env := setupProductControllerTest(t)

	body := validProductBody()
	body["name"] = ""
	body["category"] = "Todos"
	body["images"] = []string{}

	w := env.do(t, http.MethodPost, "/admin/products", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", response["error"])
	fields := response["fields"].(map[string]interface{})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "images")
	assert.Len(t, env.products.List(), 6)
}

func TestProductController_UpdateProduct(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodPut, "/admin/products/4", map[string]interface{}{
		"price": 42.5,
	})

	require.Equal(t, http.StatusOK, w.Code)
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, 42.5, product["price"])
	assert.Equal(t, "Vela Aromática de Lavanda e Mirra", product["name"])

	w = env.do(t, http.MethodPut, "/admin/products/999", map[string]interface{}{"price": 1.0})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_UpdateProduct_StoreFailureReverts(t *testing.T) {
	env := setupProductControllerTest(t)
	breakDB(t, env.db)

	w := env.do(t, http.MethodPut, "/admin/products/4", map[string]interface{}{
		"price": 42.5,
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	product, err := env.products.Get("4")
	require.NoError(t, err)
	assert.Equal(t, 38.0, product.Price)
}

func TestProductController_AdjustStock(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodPatch, "/admin/products/6/stock", map[string]interface{}{"delta": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), decode(t, w)["product"].(map[string]interface{})["stock"])

	w = env.do(t, http.MethodPatch, "/admin/products/6/stock", map[string]interface{}{"delta": -100})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["product"].(map[string]interface{})["stock"])
}

func TestProductController_DeleteProduct_RequiresConfirmation(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(t, http.MethodDelete, "/admin/products/5", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_CONFIRMATION_REQUIRED", decode(t, w)["error"])
	_, err := env.products.Get("5")
	require.NoError(t, err)

	w = env.do(t, http.MethodDelete, "/admin/products/5?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	_, err = env.products.Get("5")
	assert.Error(t, err)

	w = env.do(t, http.MethodGet, "/admin/products", nil)
	assert.Equal(t, float64(5), decode(t, w)["count"])
}
