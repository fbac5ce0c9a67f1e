package catalog

import "github.com/shopspring/decimal"

// Product is a catalog entry as normalized from the feed. Products are
// immutable once loaded; cart lines reference them by value.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
}

// LowStock reports whether the product is still available but running out,
// matching the threshold the storefront highlights.
func (p Product) LowStock() bool {
	return p.Stock > 0 && p.Stock <= 10
}
