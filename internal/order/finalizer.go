package order

import (
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jrmolina/tienda-whatsapp/internal/cart"
)

// ErrMessageTooLong is returned when the rendered order message exceeds the
// channel limit. The order itself is still finalized; only the hand-off is
// suppressed.
var ErrMessageTooLong = errors.New("order message exceeds the channel limit")

const orderIDPrefix = "ORD"

// Finalizer freezes cart state into order snapshots and renders them for the
// WhatsApp hand-off. The message cap is measured on the raw text before
// URL-encoding.
type Finalizer struct {
	whatsAppNumber string
	maxMessageLen  int

	now        func() time.Time
	randSuffix func() int
}

func NewFinalizer(whatsAppNumber string, maxMessageLen int) *Finalizer {
	return &Finalizer{
		whatsAppNumber: whatsAppNumber,
		maxMessageLen:  maxMessageLen,
		now:            time.Now,
		randSuffix:     func() int { return rand.Intn(9000) + 1000 },
	}
}

// Finalize builds the immutable snapshot. Delivery details are assumed valid;
// the checkout guard rejects incomplete forms before this point.
func (f *Finalizer) Finalize(details DeliveryDetails, items []cart.Item, subtotal, shippingCost decimal.Decimal) *Details {
	frozen := make([]cart.Item, len(items))
	copy(frozen, items)

	o := &Details{
		ID:              f.newID(),
		Items:           frozen,
		RecipientName:   details.RecipientName,
		DeliveryAddress: details.DeliveryAddress,
		DeliveryDate:    details.DeliveryDate,
		DeliveryWindow:  details.DeliveryWindow,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Total:           subtotal.Add(shippingCost),
	}

	log.Info().Str("order_id", o.ID).Int("lines", len(o.Items)).Str("total", o.Total.String()).Msg("order finalized")
	return o
}

// newID concatenates a fixed prefix, compact date and time, and a random
// four-digit suffix. Uniqueness is best-effort, not guaranteed.
func (f *Finalizer) newID() string {
	now := f.now()
	return fmt.Sprintf("%s-%s-%s-%d", orderIDPrefix, now.Format("20060102"), now.Format("150405"), f.randSuffix())
}

// Link renders the order message and wraps it in a wa.me compose URL. Returns
// ErrMessageTooLong when the raw message is over budget.
func (f *Finalizer) Link(o *Details) (string, error) {
	message := Message(o)
	if len(message) > f.maxMessageLen {
		log.Warn().Str("order_id", o.ID).Int("length", len(message)).Int("limit", f.maxMessageLen).Msg("order message over channel limit, hand-off skipped")
		return "", ErrMessageTooLong
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", f.whatsAppNumber, url.QueryEscape(message)), nil
}

// Message renders the plain-text order payload: header, delivery details and a
// product manifest of id,quantity pairs.
func Message(o *Details) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[PEDIDO:%s]\n", o.ID)
	fmt.Fprintf(&b, "Recibe: %s\n", o.RecipientName)
	fmt.Fprintf(&b, "Dirección: %s\n", o.DeliveryAddress)
	fmt.Fprintf(&b, "Fecha: %s\n", o.DeliveryDate)
	fmt.Fprintf(&b, "Hora: %s\n", o.DeliveryWindow)
	b.WriteString("--PRODUCTOS--\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "%s,%d\n", item.Product.ID, item.Quantity)
	}
	b.WriteString("--FIN PRODUCTOS--")
	return b.String()
}
