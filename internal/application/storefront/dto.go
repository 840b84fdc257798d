package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/infrastructure/commerce"
)

// Cart and wishlist views carry a Source marker so the frontend knows
// whether it is looking at session-held guest state or the account state
// owned by the commerce API.
const (
	SourceGuest   = "guest"
	SourceAccount = "account"
)

// ProductView is the catalog detail attached to cart and wishlist lines
type ProductView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     string  `json:"price"`
	SalePrice *string `json:"sale_price,omitempty"`
	Image     *string `json:"image,omitempty"`
	InStock   bool    `json:"in_stock"`
}

// NewProductView maps a commerce product to its view
func NewProductView(product *commerce.Product) *ProductView {
	if product == nil {
		return nil
	}
	view := &ProductView{
		ID:      product.ID,
		Name:    product.Name,
		Price:   product.Price.StringFixed(2),
		Image:   product.Image,
		InStock: product.InStock(),
	}
	if product.SalePrice != nil {
		sale := product.SalePrice.StringFixed(2)
		view.SalePrice = &sale
	}
	return view
}

// CartLineView is one cart line with optional catalog detail
type CartLineView struct {
	ProductID string       `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Product   *ProductView `json:"product,omitempty"`
}

// CartView is the cart as presented to the frontend
type CartView struct {
	Source   string         `json:"source"`
	Lines    []CartLineView `json:"lines"`
	Subtotal string         `json:"subtotal,omitempty"`
}

// ItemCount returns the total quantity across all lines
func (v *CartView) ItemCount() int {
	total := 0
	for _, line := range v.Lines {
		total += line.Quantity
	}
	return total
}

// WishlistEntryView is one wishlist entry with optional catalog detail
type WishlistEntryView struct {
	ProductID string       `json:"product_id"`
	Product   *ProductView `json:"product,omitempty"`
}

// WishlistView is the wishlist as presented to the frontend
type WishlistView struct {
	Source  string              `json:"source"`
	Entries []WishlistEntryView `json:"entries"`
}

// MergeResult reports the outcome of folding guest selections into an
// account after login. The guest store is cleared regardless of failures,
// so failed product IDs are reported here for the frontend to surface.
type MergeResult struct {
	CartItemsMerged  int      `json:"cart_items_merged"`
	CartItemsFailed  int      `json:"cart_items_failed"`
	SavedItemsMerged int      `json:"saved_items_merged"`
	SavedItemsFailed int      `json:"saved_items_failed"`
	FailedProducts   []string `json:"failed_products,omitempty"`
}

// Clean reports whether every guest selection made it into the account
func (r MergeResult) Clean() bool {
	return r.CartItemsFailed == 0 && r.SavedItemsFailed == 0
}

// Empty reports whether there was nothing to merge
func (r MergeResult) Empty() bool {
	return r.CartItemsMerged == 0 && r.CartItemsFailed == 0 &&
		r.SavedItemsMerged == 0 && r.SavedItemsFailed == 0
}

// subtotal sums quantity times effective price across the lines that have
// catalog detail; an empty string means at least one line is unknown
func subtotal(lines []CartLineView, products map[string]*commerce.Product) string {
	total := decimal.Zero
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok || product == nil {
			return ""
		}
		total = total.Add(product.EffectivePrice().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.StringFixed(2)
}
