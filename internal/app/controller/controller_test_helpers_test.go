package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	"github.com/minhasantafonte/santafonte-backend/internal/cart"
	"github.com/minhasantafonte/santafonte-backend/internal/configurator"
	"github.com/minhasantafonte/santafonte-backend/internal/db"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testVisitor = "visitor-test"

type testEnv struct {
	db         *gorm.DB
	router     *gin.Engine
	products   service.ProductService
	options    service.OptionService
	carts      service.CartService
	customizer service.CustomizerService
	sales      service.SaleService
	articles   service.ArticleService
}

// setupControllerTest wires every service over a seeded in-memory database.
// Requests run as testVisitor and as admin user 1.
func setupControllerTest(t *testing.T) *testEnv {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedDB(testDB))
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	env := &testEnv{db: testDB}
	env.products = service.NewProductService(repository.NewProductRepository(testDB))
	env.options = service.NewOptionService(
		repository.NewRosaryOptionRepository(testDB),
		repository.NewStoreConfigRepository(testDB),
	)
	env.sales = service.NewSaleService(repository.NewSaleRepository(testDB), nil, nil)
	env.articles = service.NewArticleService(repository.NewArticleRepository(testDB))
	require.NoError(t, env.products.Load())
	require.NoError(t, env.options.Load())
	require.NoError(t, env.sales.Load())
	require.NoError(t, env.articles.Load())

	env.carts = service.NewCartService(cart.NewMemoryStore(), env.products, "+55 11 98888-7777")
	env.customizer = service.NewCustomizerService(configurator.NewMemoryStore(), env.options, env.carts)

	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	env.router.Use(func(c *gin.Context) {
		c.Set(middleware.VisitorKey, testVisitor)
		c.Set(middleware.UserIDKey, uint(1))
		c.Next()
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// breakDB closes the connection so every later write fails.
func breakDB(t *testing.T, testDB *gorm.DB) {
	t.Helper()
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
