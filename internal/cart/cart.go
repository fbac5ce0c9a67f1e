package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
)

// Item is a single product+quantity line. Invariant: 1 <= Quantity <= Product.Stock
// for as long as the line exists; a line never survives at quantity zero.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is an ordered collection of lines keyed by product id. It performs no
// I/O; totals are derived on every read.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// AddItem increments the line for the product by one, clamped to stock, or
// inserts a new line at quantity one. Adding a product with zero stock is a
// harmless no-op: the engine guards it rather than storing an unfillable line.
func (c *Cart) AddItem(p catalog.Product) {
	if p.Stock <= 0 {
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity = clamp(c.items[i].Quantity+1, p.Stock)
			return
		}
	}
	c.items = append(c.items, Item{Product: p, Quantity: 1})
}

// SetQuantity removes the line when quantity drops to zero or below, otherwise
// sets it clamped to the product's stock. Unknown product ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = clamp(quantity, c.items[i].Product.Stock)
			return
		}
	}
}

func (c *Cart) RemoveItem(productID string) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

func (c *Cart) Total(shippingCost decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(shippingCost)
}

func clamp(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}
