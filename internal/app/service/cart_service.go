package service

import (
	"context"
	"errors"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/cart"
	"github.com/minhasantafonte/santafonte-backend/internal/metrics"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
)

var (
	ErrOutOfStock       = cart.ErrOutOfStock
	ErrCartLineNotFound = cart.ErrLineNotFound
	ErrCartEmpty        = errors.New("cart is empty")
)

// CartView is the cart as returned to the storefront.
type CartView struct {
	Items          []model.CartItem `json:"items"`
	Total          float64          `json:"total"`
	TotalFormatted string           `json:"total_formatted"`
	Count          int              `json:"count"`
}

// Checkout is the WhatsApp hand-off for the current cart.
type Checkout struct {
	Message string  `json:"message"`
	Link    string  `json:"link"`
	Total   float64 `json:"total"`
}

type CartService interface {
	Get(ctx context.Context, visitor string) (*CartView, error)
	Add(ctx context.Context, visitor, productID, variantName string) (*CartView, error)
	AddCustom(ctx context.Context, visitor string, item model.CartItem) (*CartView, error)
	Remove(ctx context.Context, visitor, productID, variantName string) (*CartView, error)
	Clear(ctx context.Context, visitor string) error
	Checkout(ctx context.Context, visitor string) (*Checkout, error)
}

type cartService struct {
	store          cart.Store
	productService ProductService
	whatsAppPhone  string
}

func NewCartService(store cart.Store, productService ProductService, whatsAppPhone string) CartService {
	return &cartService{
		store:          store,
		productService: productService,
		whatsAppPhone:  whatsAppPhone,
	}
}

func (s *cartService) load(ctx context.Context, visitor string) (*cart.Cart, error) {
	items, err := s.store.Load(ctx, visitor)
	if err != nil {
		logger.Error("Failed to load cart", err, map[string]interface{}{
			"visitor": visitor,
		})
		return nil, err
	}
	return cart.New(items), nil
}

func (s *cartService) save(ctx context.Context, visitor string, c *cart.Cart) (*CartView, error) {
	if err := s.store.Save(ctx, visitor, c.Items); err != nil {
		logger.Error("Failed to save cart", err, map[string]interface{}{
			"visitor": visitor,
		})
		return nil, err
	}
	return newCartView(c), nil
}

func newCartView(c *cart.Cart) *CartView {
	total := c.Total()
	return &CartView{
		Items:          c.Items,
		Total:          total,
		TotalFormatted: cart.FormatBRL(total),
		Count:          c.Count(),
	}
}

func (s *cartService) Get(ctx context.Context, visitor string) (*CartView, error) {
	c, err := s.load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	return newCartView(c), nil
}

// Add puts one unit of the product in the cart. The product is looked up in
// the live catalog so price and stock are current.
func (s *cartService) Add(ctx context.Context, visitor, productID, variantName string) (*CartView, error) {
	product, err := s.productService.Get(productID)
	if err != nil {
		metrics.RecordCartOperation("add", "not_found")
		return nil, err
	}

	var variant *model.ProductVariant
	if variantName != "" {
		if variant = product.FindVariant(variantName); variant == nil {
			metrics.RecordCartOperation("add", "not_found")
			return nil, ErrVariantNotFound
		}
	}

	c, err := s.load(ctx, visitor)
	if err != nil {
		return nil, err
	}

	if _, err := c.Add(*product, variant); err != nil {
		metrics.RecordCartOperation("add", "out_of_stock")
		logger.Warn("Add to cart rejected", map[string]interface{}{
			"visitor":    visitor,
			"product_id": productID,
			"error":      err.Error(),
		})
		return nil, err
	}

	view, err := s.save(ctx, visitor, c)
	if err != nil {
		metrics.RecordCartOperation("add", "error")
		return nil, err
	}

	metrics.RecordCartOperation("add", "ok")
	logger.Debug("Product added to cart", map[string]interface{}{
		"visitor":    visitor,
		"product_id": productID,
		"variant":    variantName,
	})
	return view, nil
}

func (s *cartService) AddCustom(ctx context.Context, visitor string, item model.CartItem) (*CartView, error) {
	c, err := s.load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	c.AddCustom(item)

	view, err := s.save(ctx, visitor, c)
	if err != nil {
		metrics.RecordCartOperation("add_custom", "error")
		return nil, err
	}
	metrics.RecordCartOperation("add_custom", "ok")
	return view, nil
}

func (s *cartService) Remove(ctx context.Context, visitor, productID, variantName string) (*CartView, error) {
	c, err := s.load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(productID, variantName); err != nil {
		metrics.RecordCartOperation("remove", "not_found")
		return nil, err
	}

	view, err := s.save(ctx, visitor, c)
	if err != nil {
		metrics.RecordCartOperation("remove", "error")
		return nil, err
	}
	metrics.RecordCartOperation("remove", "ok")
	return view, nil
}

func (s *cartService) Clear(ctx context.Context, visitor string) error {
	c := cart.New(nil)
	if _, err := s.save(ctx, visitor, c); err != nil {
		return err
	}
	metrics.RecordCartOperation("clear", "ok")
	return nil
}

// Checkout builds the order message and the WhatsApp link. The cart is kept.
func (s *cartService) Checkout(ctx context.Context, visitor string) (*Checkout, error) {
	c, err := s.load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrCartEmpty
	}

	message := cart.CheckoutMessage(c.Items)
	metrics.RecordCheckoutLink()

	logger.Info("Checkout link generated", map[string]interface{}{
		"visitor": visitor,
		"lines":   len(c.Items),
		"total":   c.Total(),
	})
	return &Checkout{
		Message: message,
		Link:    cart.WhatsAppLink(s.whatsAppPhone, message),
		Total:   c.Total(),
	}, nil
}
