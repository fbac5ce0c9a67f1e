package session_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrmolina/tienda-whatsapp/internal/checkout"
	"github.com/jrmolina/tienda-whatsapp/internal/order"
	"github.com/jrmolina/tienda-whatsapp/internal/session"
)

func newTestRegistry() *session.Registry {
	return session.NewRegistry(checkout.Config{
		ShippingCost:    decimal.NewFromInt(20),
		Finalizer:       order.NewFinalizer("5215512345678", 4096),
		DeliveryWindows: checkout.DefaultDeliveryWindows,
	})
}

func TestRegistry_Get_CreatesAndReuses(t *testing.T) {
	reg := newTestRegistry()

	sess, id, err := reg.Get("")
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.NotEmpty(t, id)

	again, sameID, err := reg.Get(id)
	require.NoError(t, err)
	assert.Same(t, sess, again)
	assert.Equal(t, id, sameID)
}

func TestRegistry_Get_UnknownIDCreatesFreshSession(t *testing.T) {
	reg := newTestRegistry()

	sess, id, err := reg.Get("not-a-known-session")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.NotEqual(t, "not-a-known-session", id)
	assert.Equal(t, checkout.StepSelection, sess.State().Step)
}
