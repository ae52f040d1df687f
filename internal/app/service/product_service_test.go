package service

import (
	"errors"
	"testing"
	"time"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/catalog"
	"github.com/minhasantafonte/santafonte-backend/internal/optimistic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*gorm.DB, ProductService) {
	testDB := setupSeededDB(t)
	svc := NewProductService(repository.NewProductRepository(testDB))
	require.NoError(t, svc.Load())
	return testDB, svc
}

func validInput() ProductInput {
	return ProductInput{
		Name:        "Terço de Cristal",
		Category:    model.CategoryRosaries,
		Price:       70,
		Description: "Contas de cristal",
		Images:      []string{"https://example.com/cristal.jpg"},
		Variants: []model.ProductVariant{
			{Name: "Azul", PriceDelta: 5},
			{Name: "Rosa"},
		},
		Stock: 4,
	}
}

func TestProductService_LoadAndGet(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	assert.Len(t, svc.List(), 6)

	product, err := svc.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Nossa Senhora Aparecida 30cm", product.Name)

	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Catalog(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	result := svc.Catalog(catalog.Params{SearchTerm: "bíblia"}, 1)
	assert.Equal(t, 2, result.TotalItems)

	result = svc.Catalog(catalog.Params{Category: model.CategoryCandles}, 1)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "4", result.Items[0].ID)

	result = svc.Catalog(catalog.Params{Sort: catalog.SortPriceDesc}, 1)
	require.Len(t, result.Items, 6)
	assert.Equal(t, 189.90, result.Items[0].Price)
	assert.Equal(t, 1, result.TotalPages)

	result = svc.Catalog(catalog.Params{}, 5)
	assert.Empty(t, result.Items)
	assert.Equal(t, 5, result.Page)
}

func TestProductService_FeaturedAndCategories(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	featured := svc.Featured(3)
	assert.Len(t, featured, 3)
	for _, p := range featured {
		assert.True(t, p.IsFeatured)
	}

	categories := svc.Categories()
	assert.Equal(t, model.CategoryAll, categories[0])
	assert.Len(t, categories, len(model.ProductCategories)+1)
}

func TestProductService_Create(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)

	product, err := svc.Create(validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "https://example.com/cristal.jpg", product.Image)
	assert.Equal(t, optimistic.StatusSaved, svc.SyncStatus().Status)
	assert.Len(t, svc.List(), 7)

	stored, err := repository.NewProductRepository(testDB).FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Terço de Cristal", stored.Name)
	assert.Len(t, stored.Variants, 2)
}

func TestProductService_CreateValidation(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	tests := []struct {
		name   string
		mutate func(*ProductInput)
		field  string
	}{
		{"missing name", func(in *ProductInput) { in.Name = "" }, "name"},
		{"unknown category", func(in *ProductInput) { in.Category = "Brinquedos" }, "category"},
		{"filter sentinel category", func(in *ProductInput) { in.Category = model.CategoryAll }, "category"},
		{"missing description", func(in *ProductInput) { in.Description = "" }, "description"},
		{"no image", func(in *ProductInput) { in.Images = nil }, "images"},
		{"duplicate variant", func(in *ProductInput) { in.Variants[1].Name = "Azul" }, "variants[1].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			product, err := svc.Create(input)
			assert.Nil(t, product)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Len(t, svc.List(), 6)
		})
	}
}

func TestProductService_CreateCoercesNegatives(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	input := validInput()
	input.Price = -5
	input.Stock = -1

	product, err := svc.Create(input)
	require.NoError(t, err)
	assert.Equal(t, 0.0, product.Price)
	assert.Equal(t, 0, product.Stock)
}

func TestProductService_UpdateMergesPatch(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	updated, err := svc.Update("2", ProductPatch{
		Price:      ptr(49.90),
		IsFeatured: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 49.90, updated.Price)
	assert.False(t, updated.IsFeatured)
	assert.Equal(t, "Terço de Madeira Nobre", updated.Name)

	_, err = svc.Update("2", ProductPatch{Name: ptr("")})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	current, err := svc.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "Terço de Madeira Nobre", current.Name)

	_, err = svc.Update("missing", ProductPatch{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateImagesResetsPrimary(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	updated, err := svc.Update("3", ProductPatch{
		Images: ptr([]string{"https://example.com/a.jpg", "https://example.com/b.jpg"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.jpg", updated.Image)
	assert.Len(t, updated.Images, 2)
}

func TestProductService_DeleteRequiresConfirmation(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	assert.ErrorIs(t, svc.Delete("1", false), ErrConfirmationRequired)
	assert.Len(t, svc.List(), 6)

	require.NoError(t, svc.Delete("1", true))
	assert.Len(t, svc.List(), 5)

	assert.ErrorIs(t, svc.Delete("1", true), ErrProductNotFound)
}

func TestProductService_AdjustStockClampsAtZero(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)

	product, err := svc.AdjustStock("6", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	product, err = svc.AdjustStock("6", -10)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)

	stored, err := repository.NewProductRepository(testDB).FindByID("6")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)

	_, err = svc.AdjustStock("missing", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_FailedWriteReverts(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	breakDB(t, testDB)

	_, err := svc.AdjustStock("1", 5)
	require.Error(t, err)

	product, getErr := svc.Get("1")
	require.NoError(t, getErr)
	assert.Equal(t, 15, product.Stock)

	state := svc.SyncStatus()
	assert.Equal(t, optimistic.StatusFailed, state.Status)
	assert.NotEmpty(t, state.Error)
}

func TestProductService_LowStock(t *testing.T) {
	_, svc := setupProductServiceTest(t)

	low := svc.LowStock(5)
	require.Len(t, low, 2)
	assert.Equal(t, "6", low[0].ID)
	assert.Equal(t, "5", low[1].ID)
}

// stallingStockRepo holds SetStock until released, then fails it.
type stallingStockRepo struct {
	repository.ProductRepository
	entered chan struct{}
	release chan struct{}
}

func (r *stallingStockRepo) SetStock(string, int) error {
	close(r.entered)
	<-r.release
	return errors.New("database timeout")
}

func TestProductService_UpdateKeepsStockOfConcurrentWrite(t *testing.T) {
	testDB := setupSeededDB(t)
	repo := &stallingStockRepo{
		ProductRepository: repository.NewProductRepository(testDB),
		entered:           make(chan struct{}),
		release:           make(chan struct{}),
	}
	svc := NewProductService(repo)
	require.NoError(t, svc.Load())

	adjustErr := make(chan error, 1)
	go func() {
		_, err := svc.AdjustStock("2", 5)
		adjustErr <- err
	}()
	<-repo.entered

	updateErr := make(chan error, 1)
	go func() {
		_, err := svc.Update("2", ProductPatch{Name: ptr("Terço de Madeira Escura")})
		updateErr <- err
	}()
	time.Sleep(20 * time.Millisecond)
	close(repo.release)

	require.Error(t, <-adjustErr)
	require.NoError(t, <-updateErr)

	current, err := svc.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "Terço de Madeira Escura", current.Name)
	assert.Equal(t, 20, current.Stock)

	var stored model.Product
	require.NoError(t, testDB.First(&stored, "id = ?", "2").Error)
	assert.Equal(t, 20, stored.Stock)
}
