package controller

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupSaleControllerTest(t *testing.T) *testEnv {
	env := setupControllerTest(t)
	ctrl := NewSaleController(env.sales)

	env.router.GET("/admin/sales", ctrl.ListSales)
	env.router.GET("/admin/sales/board", ctrl.GetBoard)
	env.router.GET("/admin/sales/export", ctrl.ExportSales)
	env.router.POST("/admin/sales", ctrl.CreateSale)
	env.router.PUT("/admin/sales/:id", ctrl.UpdateSale)
	env.router.PATCH("/admin/sales/:id/status", ctrl.MoveSale)
	env.router.POST("/admin/sales/:id/advance", ctrl.AdvanceSale)
	env.router.POST("/admin/sales/:id/retreat", ctrl.RetreatSale)
	env.router.DELETE("/admin/sales/:id", ctrl.DeleteSale)
	return env
}

func createSale(t *testing.T, env *testEnv, description string, value float64) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/admin/sales", map[string]interface{}{
		"date":        "10/03/2024",
		"description": description,
		"value":       value,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sale := decode(t, w)["sale"].(map[string]interface{})
	return sale["id"].(string)
}

func TestSaleController_CreateSale_ReportsNotification(t *testing.T) {
	env := setupSaleControllerTest(t)

	w := env.do(t, http.MethodPost, "/admin/sales", map[string]interface{}{
		"description": "Terço personalizado para Maria",
		"value":       82.0,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	response := decode(t, w)
	sale := response["sale"].(map[string]interface{})
	assert.Equal(t, "pending", sale["status"])
	assert.NotEmpty(t, sale["date"])

	// Notifications are disabled in this environment; the entry stays.
	notification := response["notification"].(map[string]interface{})
	assert.Equal(t, false, notification["sent"])
	assert.NotEmpty(t, notification["error"])
	assert.Len(t, env.sales.List(), 1)
}

func TestSaleController_CreateSale_ValidationError(t *testing.T) {
	env := setupSaleControllerTest(t)

	w := env.do(t, http.MethodPost, "/admin/sales", map[string]interface{}{
		"date":  "2024-03-10",
		"value": -5,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "value")
	assert.Empty(t, env.sales.List())
}

func TestSaleController_BoardMoves(t *testing.T) {
	env := setupSaleControllerTest(t)
	id := createSale(t, env, "Imagem Aparecida", 189.9)
	createSale(t, env, "Vela de Mirra", 38)

	w := env.do(t, http.MethodPost, "/admin/sales/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", decode(t, w)["sale"].(map[string]interface{})["status"])

	w = env.do(t, http.MethodPatch, "/admin/sales/"+id+"/status", map[string]interface{}{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code)

	// Advancing past the last column keeps the entry there.
	w = env.do(t, http.MethodPost, "/admin/sales/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "done", decode(t, w)["sale"].(map[string]interface{})["status"])

	w = env.do(t, http.MethodGet, "/admin/sales/board", nil)
	require.Equal(t, http.StatusOK, w.Code)
	columns := decode(t, w)["columns"].([]interface{})
	require.Len(t, columns, 3)
	pending := columns[0].(map[string]interface{})
	done := columns[2].(map[string]interface{})
	assert.Equal(t, "pending", pending["status"])
	assert.Len(t, pending["entries"], 1)
	assert.Equal(t, 38.0, pending["total"])
	assert.Len(t, done["entries"], 1)
	assert.Equal(t, 189.9, done["total"])

	w = env.do(t, http.MethodPost, "/admin/sales/"+id+"/retreat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", decode(t, w)["sale"].(map[string]interface{})["status"])
}

func TestSaleController_MoveSale_Errors(t *testing.T) {
	env := setupSaleControllerTest(t)
	id := createSale(t, env, "Bíblia", 120)

	w := env.do(t, http.MethodPatch, "/admin/sales/"+id+"/status", map[string]interface{}{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SALE_INVALID_STATUS", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, "/admin/sales/nope/advance", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SALE_NOT_FOUND", decode(t, w)["error"])
}

func TestSaleController_UpdateAndDelete(t *testing.T) {
	env := setupSaleControllerTest(t)
	id := createSale(t, env, "Quadro", 75)

	w := env.do(t, http.MethodPut, "/admin/sales/"+id, map[string]interface{}{"value": 80})
	require.Equal(t, http.StatusOK, w.Code)
	sale := decode(t, w)["sale"].(map[string]interface{})
	assert.Equal(t, 80.0, sale["value"])
	assert.Equal(t, "Quadro", sale["description"])

	w = env.do(t, http.MethodDelete, "/admin/sales/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, "/admin/sales/"+id+"?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/admin/sales", nil)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestSaleController_ExportSales(t *testing.T) {
	env := setupSaleControllerTest(t)
	createSale(t, env, "Terço", 45)

	w := env.do(t, http.MethodGet, "/admin/sales/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vendas-")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Vendas")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Contains(t, rows[1], "Terço")
}
