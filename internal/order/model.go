package order

import (
	"github.com/shopspring/decimal"

	"github.com/jrmolina/tienda-whatsapp/internal/cart"
)

// DeliveryDetails is the delivery form as submitted by the shopper.
type DeliveryDetails struct {
	RecipientName   string `json:"recipient_name" validate:"required"`
	DeliveryAddress string `json:"delivery_address" validate:"required"`
	DeliveryDate    string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	DeliveryWindow  string `json:"delivery_window" validate:"required"`
}

// Details is the immutable order snapshot produced at finalization. The items
// slice is a copy of the cart at that moment, decoupled from later edits.
type Details struct {
	ID              string          `json:"id"`
	Items           []cart.Item     `json:"items"`
	RecipientName   string          `json:"recipient_name"`
	DeliveryAddress string          `json:"delivery_address"`
	DeliveryDate    string          `json:"delivery_date"`
	DeliveryWindow  string          `json:"delivery_window"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Total           decimal.Decimal `json:"total"`
}
