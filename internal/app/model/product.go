package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	// CategoryAll is a filter sentinel; no product is ever stored with it.
	CategoryAll ProductCategory = "Todos"

	CategorySacredImages ProductCategory = "Imagens Sacras"
	CategoryRosaries     ProductCategory = "Terços"
	CategoryBibles       ProductCategory = "Bíblias"
	CategoryCandles      ProductCategory = "Velas"
	CategoryFramedPrints ProductCategory = "Quadros Religiosos"
	CategoryPrayerItems  ProductCategory = "Artigos para Oração"
	CategoryDecoration   ProductCategory = "Decoração"
)

// ProductCategories lists the storable categories in display order.
var ProductCategories = []ProductCategory{
	CategorySacredImages,
	CategoryRosaries,
	CategoryBibles,
	CategoryCandles,
	CategoryFramedPrints,
	CategoryPrayerItems,
	CategoryDecoration,
}

// IsValid reports whether c may be stored on a product.
func (c ProductCategory) IsValid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ProductVariant is owned by its product and serialized inline with it.
type ProductVariant struct {
	Name       string  `json:"name"`
	PriceDelta float64 `json:"price_delta"`
	Image      string  `json:"image,omitempty"`
}

type Product struct {
	ID          string           `gorm:"primarykey;type:varchar(64)" json:"id"`
	Name        string           `gorm:"not null" json:"name"`
	Category    ProductCategory  `gorm:"type:varchar(50);index" json:"category"`
	Price       float64          `gorm:"not null;default:0" json:"price"`
	Description string           `gorm:"type:text" json:"description"`
	Image       string           `json:"image"`
	Images      []string         `gorm:"serializer:json" json:"images"`
	Variants    []ProductVariant `gorm:"serializer:json" json:"variants,omitempty"`
	Stock       int              `gorm:"not null;default:0" json:"stock"`
	IsFeatured  bool             `gorm:"default:false" json:"is_featured"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeSave keeps stored rows normalized whichever path writes them.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Normalize()
	return nil
}

// Normalize coerces price and stock to non-negative values and makes the
// primary image and the gallery agree with each other.
func (p *Product) Normalize() {
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	if len(p.Images) == 0 && p.Image != "" {
		p.Images = []string{p.Image}
	}
}

// InStock reports whether the product can be added to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// FindVariant returns the variant with the given name, or nil.
func (p *Product) FindVariant(name string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			v := p.Variants[i]
			return &v
		}
	}
	return nil
}
