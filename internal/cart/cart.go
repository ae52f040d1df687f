// Package cart holds the visitor's line items and the checkout hand-off.
package cart

import (
	"errors"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock   = errors.New("cart: product is out of stock")
	ErrLineNotFound = errors.New("cart: line not found")
)

// Cart is an ordered list of lines. Lines are identified by
// (product id, variant name); custom items are never merged.
type Cart struct {
	Items []model.CartItem `json:"items"`
}

func New(items []model.CartItem) *Cart {
	if items == nil {
		items = []model.CartItem{}
	}
	return &Cart{Items: items}
}

// Add puts one unit of product into the cart, merging with an existing line
// for the same product and variant. The unit price includes the variant
// delta. Nothing changes when the product has no stock.
func (c *Cart) Add(product model.Product, variant *model.ProductVariant) (*model.CartItem, error) {
	if !product.InStock() {
		return nil, ErrOutOfStock
	}

	variantName := ""
	if variant != nil {
		variantName = variant.Name
	}

	for i := range c.Items {
		if !c.Items[i].IsCustom && c.Items[i].Matches(product.ID, variantName) {
			c.Items[i].Quantity++
			return &c.Items[i], nil
		}
	}

	item := model.CartItem{
		Product:  product,
		Quantity: 1,
	}
	if variant != nil {
		v := *variant
		item.SelectedVariant = &v
		item.Price = decimal.NewFromFloat(product.Price).
			Add(decimal.NewFromFloat(v.PriceDelta)).
			Round(2).
			InexactFloat64()
	}
	c.Items = append(c.Items, item)
	return &c.Items[len(c.Items)-1], nil
}

// AddCustom appends a configurator item as its own line.
func (c *Cart) AddCustom(item model.CartItem) {
	item.IsCustom = true
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	c.Items = append(c.Items, item)
}

// Remove drops the whole line matching productID and variantName. An empty
// variantName only matches lines without a variant.
func (c *Cart) Remove(productID, variantName string) error {
	for i := range c.Items {
		if c.Items[i].Matches(productID, variantName) {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) Clear() {
	c.Items = []model.CartItem{}
}

// Total is the sum of unit price times quantity over all lines.
func (c *Cart) Total() float64 {
	return Total(c.Items)
}

// Count is the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func Total(items []model.CartItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item))
	}
	return sum.Round(2).InexactFloat64()
}

func LineTotal(item model.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}
