package checkout_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
	"github.com/jrmolina/tienda-whatsapp/internal/checkout"
	"github.com/jrmolina/tienda-whatsapp/internal/order"
)

func newTestSession(maxMessageLen int) *checkout.Session {
	return checkout.NewSession(checkout.Config{
		ShippingCost:    decimal.NewFromInt(20),
		Finalizer:       order.NewFinalizer("5215512345678", maxMessageLen),
		DeliveryWindows: checkout.DefaultDeliveryWindows,
	})
}

func product(id string, price float64, stock int) catalog.Product {
	return catalog.Product{ID: id, Name: "Producto " + id, Price: decimal.NewFromFloat(price), Stock: stock}
}

func validDetails() order.DeliveryDetails {
	return order.DeliveryDetails{
		RecipientName:   "María Pérez",
		DeliveryAddress: "Av. Reforma 123",
		DeliveryDate:    "2030-05-20",
		DeliveryWindow:  "09:00 - 11:00",
	}
}

func TestSession_ProceedToSummary_EmptyCartStaysOnSelection(t *testing.T) {
	s := newTestSession(4096)

	st := s.ProceedToSummary()

	assert.Equal(t, checkout.StepSelection, st.Step)
}

func TestSession_StepFlow(t *testing.T) {
	s := newTestSession(4096)
	s.AddItem(product("A", 10, 5))

	assert.Equal(t, checkout.StepSummary, s.ProceedToSummary().Step)
	assert.Equal(t, checkout.StepDelivery, s.ProceedToDelivery().Step)
	assert.Equal(t, checkout.StepSummary, s.GoBack().Step)
	assert.Equal(t, checkout.StepSelection, s.GoBack().Step)

	// GoBack on selection is a silent no-op.
	assert.Equal(t, checkout.StepSelection, s.GoBack().Step)
}

func TestSession_ProceedToDelivery_RequiresSummaryStep(t *testing.T) {
	s := newTestSession(4096)
	s.AddItem(product("A", 10, 5))

	// Still on selection: the trigger must not fire.
	assert.Equal(t, checkout.StepSelection, s.ProceedToDelivery().Step)
}

func TestSession_State_RecomputesTotals(t *testing.T) {
	s := newTestSession(4096)
	s.AddItem(product("A", 10, 5))
	s.SetQuantity("A", 3)
	s.AddItem(product("B", 4, 2))
	s.AddItem(product("B", 4, 2))

	st := s.State()
	assert.Equal(t, 5, st.ItemCount)
	assert.True(t, st.Subtotal.Equal(decimal.NewFromInt(38)), "subtotal = %s", st.Subtotal)
	assert.True(t, st.Total.Equal(decimal.NewFromInt(58)), "total = %s", st.Total)
}

func TestSession_Finalize_HappyPath(t *testing.T) {
	s := newTestSession(4096)
	s.AddItem(product("A", 10, 5))
	s.ProceedToSummary()
	s.ProceedToDelivery()

	res, err := s.Finalize(validDetails())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, strings.HasPrefix(res.Order.ID, "ORD-"))
	assert.True(t, strings.HasPrefix(res.Link, "https://wa.me/5215512345678?text="))
	assert.Empty(t, res.Warning)

	st := s.State()
	assert.Equal(t, checkout.StepConfirmation, st.Step)
	assert.Equal(t, 0, st.ItemCount)
	require.NotNil(t, st.Order)
	assert.True(t, st.Order.Total.Equal(decimal.NewFromInt(30)), "total = %s", st.Order.Total)
	assert.Len(t, st.Order.Items, 1)
}

func TestSession_Finalize_OutsideDeliveryStepIsNoop(t *testing.T) {
	s := newTestSession(4096)
	s.AddItem(product("A", 10, 5))

	res, err := s.Finalize(validDetails())

	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, checkout.StepSelection, s.State().Step)
	assert.Equal(t, 1, s.State().ItemCount)
}

func TestSession_Finalize_RejectsInvalidDetails(t *testing.T) {
	tests := []struct {
		name    string
		details order.DeliveryDetails
	}{
		{
			name: "missing_recipient",
			details: order.DeliveryDetails{
				DeliveryAddress: "Av. Reforma 123",
				DeliveryDate:    "2030-05-20",
				DeliveryWindow:  "09:00 - 11:00",
			},
		},
		{
			name: "malformed_date",
			details: order.DeliveryDetails{
				RecipientName:   "María",
				DeliveryAddress: "Av. Reforma 123",
				DeliveryDate:    "20/05/2030",
				DeliveryWindow:  "09:00 - 11:00",
			},
		},
		{
			name: "past_date",
			details: order.DeliveryDetails{
				RecipientName:   "María",
				DeliveryAddress: "Av. Reforma 123",
				DeliveryDate:    "2000-01-01",
				DeliveryWindow:  "09:00 - 11:00",
			},
		},
		{
			name: "unknown_window",
			details: order.DeliveryDetails{
				RecipientName:   "María",
				DeliveryAddress: "Av. Reforma 123",
				DeliveryDate:    "2030-05-20",
				DeliveryWindow:  "03:00 - 05:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(4096)
			s.AddItem(product("A", 10, 5))
			s.ProceedToSummary()
			s.ProceedToDelivery()

			res, err := s.Finalize(tt.details)

			assert.ErrorIs(t, err, checkout.ErrInvalidDeliveryDetails)
			assert.Nil(t, res)

			// Validation failure blocks the transition and keeps the cart.
			st := s.State()
			assert.Equal(t, checkout.StepDelivery, st.Step)
			assert.Equal(t, 1, st.ItemCount)
			assert.Nil(t, st.Order)
		})
	}
}

func TestSession_Finalize_MessageTooLongStillFinalizes(t *testing.T) {
	s := newTestSession(10)
	s.AddItem(product("A", 10, 5))
	s.ProceedToSummary()
	s.ProceedToDelivery()

	res, err := s.Finalize(validDetails())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Empty(t, res.Link)
	assert.NotEmpty(t, res.Warning)

	// The hand-off was skipped, but the order stands and the state advanced.
	st := s.State()
	assert.Equal(t, checkout.StepConfirmation, st.Step)
	assert.NotNil(t, st.Order)
	assert.Equal(t, 0, st.ItemCount)
}

func TestSession_StartNewOrder(t *testing.T) {
	s := newTestSession(4096)
	s.AddItem(product("A", 10, 5))
	s.ProceedToSummary()
	s.ProceedToDelivery()
	_, err := s.Finalize(validDetails())
	require.NoError(t, err)

	st := s.StartNewOrder()

	assert.Equal(t, checkout.StepSelection, st.Step)
	assert.Nil(t, st.Order)
	assert.Equal(t, 0, st.ItemCount)
}

func TestSession_StartNewOrder_OnlyFromConfirmation(t *testing.T) {
	s := newTestSession(4096)
	s.AddItem(product("A", 10, 5))
	s.ProceedToSummary()

	st := s.StartNewOrder()

	// Guard did not fire: the cart survives.
	assert.Equal(t, checkout.StepSummary, st.Step)
	assert.Equal(t, 1, st.ItemCount)
}

func TestSession_GoHome_ResetsFromAnyStep(t *testing.T) {
	s := newTestSession(4096)
	s.AddItem(product("A", 10, 5))
	s.ProceedToSummary()
	s.ProceedToDelivery()

	st := s.GoHome()

	assert.Equal(t, checkout.StepSelection, st.Step)
	assert.Equal(t, 0, st.ItemCount)
	assert.Nil(t, st.Order)
}
