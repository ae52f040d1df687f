package catalog

import "github.com/minhasantafonte/santafonte-backend/internal/app/model"

// Paginate returns the 1-based page of the given size. Pages past the end
// are empty; clamping is left to the caller.
func Paginate(products []model.Product, page, size int) []model.Product {
	if size < 1 || page < 1 || page > PageCount(len(products), size) {
		return []model.Product{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(products) {
		end = len(products)
	}
	return append([]model.Product(nil), products[start:end]...)
}

// PageCount is the number of pages needed for total items.
func PageCount(total, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// View is the browsing state of one catalog screen. Changing the search
// term, category or sort key sends the view back to page 1.
type View struct {
	params   Params
	page     int
	pageSize int
}

func NewView(pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{
		params:   Params{Category: model.CategoryAll, Sort: SortRecent},
		page:     1,
		pageSize: pageSize,
	}
}

func (v *View) SetSearch(term string) {
	if term != v.params.SearchTerm {
		v.params.SearchTerm = term
		v.page = 1
	}
}

func (v *View) SetCategory(category model.ProductCategory) {
	if category != v.params.Category {
		v.params.Category = category
		v.page = 1
	}
}

func (v *View) SetSort(key SortKey) {
	if key != v.params.Sort {
		v.params.Sort = key
		v.page = 1
	}
}

func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

func (v *View) Page() int { return v.page }

func (v *View) PageSize() int { return v.pageSize }

func (v *View) Params() Params { return v.params }

// Result is one rendered page of the catalog.
type Result struct {
	Items      []model.Product `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}

// Apply runs the query over products and slices out the current page.
func (v *View) Apply(products []model.Product) Result {
	matched := Query(products, v.params)
	return Result{
		Items:      Paginate(matched, v.page, v.pageSize),
		Page:       v.page,
		PageSize:   v.pageSize,
		TotalItems: len(matched),
		TotalPages: PageCount(len(matched), v.pageSize),
	}
}
