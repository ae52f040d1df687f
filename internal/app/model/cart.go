package model

// CartItem is a product snapshot with its price already resolved to include
// the chosen variant delta. Line identity is (Product.ID, variant name).
type CartItem struct {
	Product
	Quantity        int                    `json:"quantity"`
	SelectedVariant *ProductVariant        `json:"selected_variant,omitempty"`
	IsCustom        bool                   `json:"is_custom,omitempty"`
	CustomDetails   *CustomRosarySelection `json:"custom_details,omitempty"`
}

// VariantName returns the chosen variant name, or "" when there is none.
func (i *CartItem) VariantName() string {
	if i.SelectedVariant == nil {
		return ""
	}
	return i.SelectedVariant.Name
}

// Matches reports whether the line is identified by productID and variantName.
func (i *CartItem) Matches(productID, variantName string) bool {
	return i.ID == productID && i.VariantName() == variantName
}
