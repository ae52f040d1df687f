package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOptionControllerTest(t *testing.T) *testEnv {
	env := setupControllerTest(t)
	ctrl := NewOptionController(env.options)

	env.router.GET("/options", ctrl.GetPools)
	env.router.GET("/options/base-price", ctrl.GetBasePrice)
	env.router.GET("/options/:type", ctrl.GetPool)
	env.router.GET("/admin/options", ctrl.ListOptions)
	env.router.POST("/admin/options", ctrl.UpsertOption)
	env.router.PUT("/admin/options/base-price", ctrl.SetBasePrice)
	env.router.PUT("/admin/options/:id", ctrl.UpdateOption)
	env.router.DELETE("/admin/options/:id", ctrl.DeleteOption)
	return env
}

func TestOptionController_GetPools(t *testing.T) {
	env := setupOptionControllerTest(t)

	w := env.do(t, http.MethodGet, "/options", nil)

	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Len(t, response["materials"], 3)
	assert.Len(t, response["colors"], 4)
	assert.Len(t, response["crucifixes"], 2)
}

func TestOptionController_GetPool(t *testing.T) {
	env := setupOptionControllerTest(t)

	w := env.do(t, http.MethodGet, "/options/color", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decode(t, w)["count"])

	w = env.do(t, http.MethodGet, "/options/size", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "OPTION_INVALID_TYPE", decode(t, w)["error"])
}

func TestOptionController_UpsertCreatesThenReplaces(t *testing.T) {
	env := setupOptionControllerTest(t)

	w := env.do(t, http.MethodPost, "/admin/options", map[string]interface{}{
		"type":  "crucifix",
		"name":  "Cruz de Madeira",
		"price": 8.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	option := decode(t, w)["option"].(map[string]interface{})
	id := option["id"].(string)
	assert.NotEmpty(t, id)
	assert.Len(t, env.options.Pool("crucifix"), 3)

	w = env.do(t, http.MethodPut, "/admin/options/"+id, map[string]interface{}{
		"type":  "crucifix",
		"name":  "Cruz de Madeira Rústica",
		"price": 9.5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	option = decode(t, w)["option"].(map[string]interface{})
	assert.Equal(t, id, option["id"])
	assert.Equal(t, "Cruz de Madeira Rústica", option["name"])
	assert.Len(t, env.options.Pool("crucifix"), 3)
}

func TestOptionController_UpsertValidation(t *testing.T) {
	env := setupOptionControllerTest(t)

	w := env.do(t, http.MethodPost, "/admin/options", map[string]interface{}{
		"type": "crucifix",
		"name": "",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "name")

	w = env.do(t, http.MethodPut, "/admin/options/nope", map[string]interface{}{
		"type": "crucifix",
		"name": "Cruz",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptionController_DeleteOption(t *testing.T) {
	env := setupOptionControllerTest(t)

	w := env.do(t, http.MethodDelete, "/admin/options/c4", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, env.options.Pool("color"), 4)

	w = env.do(t, http.MethodDelete, "/admin/options/c4?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.options.Pool("color"), 3)

	w = env.do(t, http.MethodDelete, "/admin/options/c4?confirm=true", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptionController_BasePrice(t *testing.T) {
	env := setupOptionControllerTest(t)

	w := env.do(t, http.MethodGet, "/options/base-price", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 40.0, decode(t, w)["value"])

	w = env.do(t, http.MethodPut, "/admin/options/base-price", map[string]interface{}{"value": 55.5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 55.5, decode(t, w)["value"])

	w = env.do(t, http.MethodPut, "/admin/options/base-price", map[string]interface{}{"value": -10})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decode(t, w)["value"])

	w = env.do(t, http.MethodPut, "/admin/options/base-price", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
