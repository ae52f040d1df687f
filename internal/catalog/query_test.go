package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []model.Product {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []model.Product{
		{ID: "1", Name: "Nossa Senhora Aparecida 30cm", Category: model.CategorySacredImages, Price: 189.90, Description: "Imagem em resina", CreatedAt: base},
		{ID: "2", Name: "Terço de Madeira Nobre", Category: model.CategoryRosaries, Price: 45.00, Description: "Contas de madeira", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "3", Name: "Bíblia Sagrada Luxo", Category: model.CategoryBibles, Price: 120.00, Description: "Capa em couro sintético", CreatedAt: base.Add(time.Hour)},
		{ID: "4", Name: "Vela Aromática", Category: model.CategoryCandles, Price: 38.00, Description: "Ideal para o terço diário"},
		{ID: "5", Name: "Terço de Cristal", Category: model.CategoryRosaries, Price: 70.00, Description: "Cristal lapidado", CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterSearch(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "Empty term keeps all", term: "", want: []string{"1", "2", "3", "4", "5"}},
		{name: "Whitespace term keeps all", term: "   ", want: []string{"1", "2", "3", "4", "5"}},
		{name: "Case insensitive name match", term: "TERÇO", want: []string{"2", "4", "5"}},
		{name: "Description match", term: "couro", want: []string{"3"}},
		{name: "No match", term: "medalha", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSearch(products, tt.term)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestQuery_SearchScenario(t *testing.T) {
	products := []model.Product{
		{ID: "a", Name: "Terço de Madeira"},
		{ID: "b", Name: "Bíblia Sagrada"},
	}

	got := Query(products, Params{SearchTerm: "terço", Category: model.CategoryAll})
	require.Len(t, got, 1)
	assert.Equal(t, "Terço de Madeira", got[0].Name)
}

func TestFilterCategory(t *testing.T) {
	products := sampleProducts()

	assert.Len(t, FilterCategory(products, model.CategoryAll), 5)
	assert.Len(t, FilterCategory(products, ""), 5)
	assert.Equal(t, []string{"2", "5"}, ids(FilterCategory(products, model.CategoryRosaries)))
	assert.Empty(t, FilterCategory(products, model.CategoryDecoration))
}

func TestSort(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name string
		key  SortKey
		want []string
	}{
		{name: "Recent first, missing timestamp last", key: SortRecent, want: []string{"5", "2", "3", "1", "4"}},
		{name: "Price ascending", key: SortPriceAsc, want: []string{"4", "2", "5", "3", "1"}},
		{name: "Price descending", key: SortPriceDesc, want: []string{"1", "3", "5", "2", "4"}},
		{name: "Unknown key keeps order", key: SortKey("popularity"), want: []string{"1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Sort(products, tt.key)))
		})
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	before := ids(products)

	_ = Query(products, Params{SearchTerm: "terço", Category: model.CategoryRosaries, Sort: SortPriceDesc})

	assert.Equal(t, before, ids(products))
}

func TestQuery_Idempotent(t *testing.T) {
	products := sampleProducts()

	for _, key := range []SortKey{SortRecent, SortPriceAsc, SortPriceDesc, "bogus"} {
		params := Params{SearchTerm: "a", Category: model.CategoryAll, Sort: key}
		once := Query(products, params)
		twice := Query(once, params)
		assert.Equal(t, ids(once), ids(twice), "sort key %s", key)
	}
}

func TestQuery_ResultIsSubsetMatchingTerm(t *testing.T) {
	products := sampleProducts()
	term := "ter"

	got := Query(products, Params{SearchTerm: term})
	for _, p := range got {
		matched := strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
		assert.True(t, matched, "product %s does not match", p.ID)
	}
}

func TestFeatured(t *testing.T) {
	products := sampleProducts()
	products[0].IsFeatured = true
	products[2].IsFeatured = true
	products[4].IsFeatured = true

	assert.Equal(t, []string{"1", "3"}, ids(Featured(products, 2)))
	assert.Equal(t, []string{"1", "3", "5"}, ids(Featured(products, 3)))
	assert.Empty(t, Featured(products, 0))
}

func TestFeatured_HugeLimit(t *testing.T) {
	products := sampleProducts()
	products[1].IsFeatured = true

	assert.NotPanics(t, func() {
		assert.Equal(t, []string{"2"}, ids(Featured(products, 1<<62)))
	})
}

func TestIsKnownSort(t *testing.T) {
	assert.True(t, IsKnownSort(SortRecent))
	assert.True(t, IsKnownSort(SortPriceAsc))
	assert.False(t, IsKnownSort(SortKey("name")))
}
