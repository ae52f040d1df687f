package catalog

import "github.com/minhasantafonte/santafonte-backend/internal/app/model"

// DisplayImage resolves the image shown for a product with an optional
// selected variant: the variant override when present, else the primary
// image, else the first gallery image.
func DisplayImage(p model.Product, variant *model.ProductVariant) string {
	if variant != nil && variant.Image != "" {
		return variant.Image
	}
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// Gallery returns the product images, falling back to the primary image.
func Gallery(p model.Product) []string {
	if len(p.Images) > 0 {
		return append([]string(nil), p.Images...)
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return []string{}
}
