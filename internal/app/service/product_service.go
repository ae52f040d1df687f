package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/catalog"
	"github.com/minhasantafonte/santafonte-backend/internal/optimistic"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
)

// ProductInput is the full product form used on create.
type ProductInput struct {
	Name        string                 `json:"name"`
	Category    model.ProductCategory  `json:"category"`
	Price       float64                `json:"price"`
	Description string                 `json:"description"`
	Image       string                 `json:"image"`
	Images      []string               `json:"images"`
	Variants    []model.ProductVariant `json:"variants"`
	Stock       int                    `json:"stock"`
	IsFeatured  bool                   `json:"is_featured"`
}

// ProductPatch holds the fields to change on update; nil keeps the current value.
type ProductPatch struct {
	Name        *string                 `json:"name"`
	Category    *model.ProductCategory  `json:"category"`
	Price       *float64                `json:"price"`
	Description *string                 `json:"description"`
	Image       *string                 `json:"image"`
	Images      *[]string               `json:"images"`
	Variants    *[]model.ProductVariant `json:"variants"`
	Stock       *int                    `json:"stock"`
	IsFeatured  *bool                   `json:"is_featured"`
}

func (p ProductPatch) apply(product *model.Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Images != nil {
		product.Images = append([]string(nil), (*p.Images)...)
		if p.Image == nil {
			product.Image = ""
		}
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.Variants != nil {
		product.Variants = append([]model.ProductVariant(nil), (*p.Variants)...)
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.IsFeatured != nil {
		product.IsFeatured = *p.IsFeatured
	}
}

type productRules struct {
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// validateProduct checks a normalized product before it is written.
func validateProduct(p model.Product) error {
	fields := checkStruct(productRules{
		Name:        p.Name,
		Category:    string(p.Category),
		Description: p.Description,
	})

	if p.Category != "" && !p.Category.IsValid() {
		fields.add("category", "Categoria inválida")
	}
	if len(p.Images) == 0 {
		fields.add("images", "Adicione pelo menos uma imagem")
	}

	seen := make(map[string]bool, len(p.Variants))
	for i, v := range p.Variants {
		key := fmt.Sprintf("variants[%d].name", i)
		if v.Name == "" {
			fields.add(key, "Campo obrigatório")
			continue
		}
		if seen[v.Name] {
			fields.add(key, "Nome de variação repetido")
		}
		seen[v.Name] = true
	}
	return fields.err()
}

type ProductService interface {
	Load() error
	List() []model.Product
	Catalog(params catalog.Params, page int) catalog.Result
	Featured(limit int) []model.Product
	Categories() []model.ProductCategory
	Get(id string) (*model.Product, error)
	Create(input ProductInput) (*model.Product, error)
	Update(id string, patch ProductPatch) (*model.Product, error)
	Delete(id string, confirmed bool) error
	AdjustStock(id string, delta int) (*model.Product, error)
	LowStock(threshold int) []model.Product
	SyncStatus() optimistic.SyncState
}

type productService struct {
	productRepo repository.ProductRepository
	products    *optimistic.Collection[model.Product]
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		products: optimistic.NewCollection("products", func(p model.Product) string {
			return p.ID
		}),
	}
}

// Load replaces the in-memory catalog with the database contents.
func (s *productService) Load() error {
	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to load products", err)
		return err
	}
	s.products.Replace(products)

	logger.Info("Products loaded", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

func (s *productService) List() []model.Product {
	return s.products.List()
}

func (s *productService) Catalog(params catalog.Params, page int) catalog.Result {
	view := catalog.NewView(catalog.DefaultPageSize)
	view.SetSearch(params.SearchTerm)
	if params.Category != "" {
		view.SetCategory(params.Category)
	}
	if params.Sort != "" {
		view.SetSort(params.Sort)
	}
	view.SetPage(page)

	result := view.Apply(s.products.List())
	logger.Debug("Catalog page computed", map[string]interface{}{
		"search":      params.SearchTerm,
		"category":    params.Category,
		"sort":        params.Sort,
		"page":        result.Page,
		"total_items": result.TotalItems,
	})
	return result
}

func (s *productService) Featured(limit int) []model.Product {
	return catalog.Featured(catalog.Sort(s.products.List(), catalog.SortRecent), limit)
}

// Categories lists the filter options, "Todos" first.
func (s *productService) Categories() []model.ProductCategory {
	return append([]model.ProductCategory{model.CategoryAll}, model.ProductCategories...)
}

func (s *productService) Get(id string) (*model.Product, error) {
	product, ok := s.products.Get(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *productService) Create(input ProductInput) (*model.Product, error) {
	now := time.Now()
	product := model.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		Images:      append([]string(nil), input.Images...),
		Variants:    append([]model.ProductVariant(nil), input.Variants...),
		Stock:       input.Stock,
		IsFeatured:  input.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	product.Normalize()

	if err := validateProduct(product); err != nil {
		logger.Warn("Product rejected", map[string]interface{}{
			"name":  product.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	err := s.products.Upsert(product, func(p model.Product) error {
		return s.productRepo.Create(&p)
	})
	recordWrite(s.products.Name(), err)
	if err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

// Update merges patch into the current product. The merged result is
// validated as a whole.
func (s *productService) Update(id string, patch ProductPatch) (*model.Product, error) {
	updated, err := s.products.Update(id, func(p model.Product) (model.Product, error) {
		patch.apply(&p)
		p.Normalize()
		p.UpdatedAt = time.Now()
		return p, validateProduct(p)
	}, func(p model.Product) error {
		return s.productRepo.Update(&p)
	})
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		logger.Warn("Product update rejected", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}
	recordWrite(s.products.Name(), err)
	if err != nil {
		return nil, s.mapError(err, id)
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return &updated, nil
}

func (s *productService) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	err := s.products.Remove(id, s.productRepo.Delete)
	recordWrite(s.products.Name(), err)
	if err != nil {
		return s.mapError(err, id)
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// AdjustStock adds delta to the stock, never going below zero.
func (s *productService) AdjustStock(id string, delta int) (*model.Product, error) {
	updated, err := s.products.Update(id, func(p model.Product) (model.Product, error) {
		p.Stock += delta
		if p.Stock < 0 {
			p.Stock = 0
		}
		p.UpdatedAt = time.Now()
		return p, nil
	}, func(p model.Product) error {
		return s.productRepo.SetStock(p.ID, p.Stock)
	})
	recordWrite(s.products.Name(), err)
	if err != nil {
		return nil, s.mapError(err, id)
	}

	logger.Info("Product stock adjusted", map[string]interface{}{
		"product_id": id,
		"delta":      delta,
		"stock":      updated.Stock,
	})
	return &updated, nil
}

// LowStock returns products with stock at or below threshold, lowest first.
func (s *productService) LowStock(threshold int) []model.Product {
	low := []model.Product{}
	for _, p := range s.products.List() {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})
	return low
}

func (s *productService) SyncStatus() optimistic.SyncState {
	return s.products.Status()
}

func (s *productService) mapError(err error, id string) error {
	if errors.Is(err, optimistic.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	logger.Error("Product write failed", err, map[string]interface{}{
		"product_id": id,
	})
	return err
}
