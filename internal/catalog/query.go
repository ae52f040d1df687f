// Package catalog filters, sorts and pages the in-memory product list shown
// on the storefront.
package catalog

import (
	"sort"
	"strings"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
)

type SortKey string

const (
	SortRecent    SortKey = "recent"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// DefaultPageSize is the number of products per catalog page.
const DefaultPageSize = 8

type Params struct {
	SearchTerm string
	Category   model.ProductCategory
	Sort       SortKey
}

// Query applies search, then category, then sort. The input slice is never
// modified; an unrecognized sort key keeps the filtered order.
func Query(products []model.Product, params Params) []model.Product {
	result := FilterSearch(products, params.SearchTerm)
	result = FilterCategory(result, params.Category)
	return Sort(result, params.Sort)
}

// FilterSearch keeps products whose name or description contains term,
// ignoring case. A blank term keeps everything.
func FilterSearch(products []model.Product, term string) []model.Product {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return append([]model.Product(nil), products...)
	}

	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			result = append(result, p)
		}
	}
	return result
}

// FilterCategory keeps products of the given category. Empty or CategoryAll
// disables the filter.
func FilterCategory(products []model.Product, category model.ProductCategory) []model.Product {
	if category == "" || category == model.CategoryAll {
		return append([]model.Product(nil), products...)
	}

	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// Sort returns a sorted copy. Ties keep their relative order.
func Sort(products []model.Product, key SortKey) []model.Product {
	result := append([]model.Product(nil), products...)

	switch key {
	case SortRecent:
		sort.SliceStable(result, func(i, j int) bool {
			return createdAtMillis(result[i]) > createdAtMillis(result[j])
		})
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price > result[j].Price
		})
	}
	return result
}

// createdAtMillis treats a missing creation time as 0.
func createdAtMillis(p model.Product) int64 {
	if p.CreatedAt.IsZero() {
		return 0
	}
	return p.CreatedAt.UnixMilli()
}

// IsKnownSort reports whether key changes ordering.
func IsKnownSort(key SortKey) bool {
	switch key {
	case SortRecent, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// Featured returns up to limit featured products in catalog order.
func Featured(products []model.Product, limit int) []model.Product {
	if limit <= 0 {
		return []model.Product{}
	}
	result := make([]model.Product, 0, min(limit, len(products)))
	for _, p := range products {
		if len(result) == limit {
			break
		}
		if p.IsFeatured {
			result = append(result, p)
		}
	}
	return result
}
