package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
	"github.com/jrmolina/tienda-whatsapp/internal/checkout"
	"github.com/jrmolina/tienda-whatsapp/internal/handler"
	"github.com/jrmolina/tienda-whatsapp/internal/order"
	"github.com/jrmolina/tienda-whatsapp/internal/session"
	"github.com/jrmolina/tienda-whatsapp/internal/summary"
	"github.com/jrmolina/tienda-whatsapp/internal/transport"
)

func newTestRouter(maxMessageLen int) *chi.Mux {
	store := catalog.NewStore([]catalog.Product{
		{ID: "A", Name: "Ramo de rosas", Category: "Flores", Description: "Doce rosas rojas", Price: decimal.NewFromInt(10), Stock: 5},
		{ID: "B", Name: "Tulipanes", Category: "Flores", Description: "Tulipanes holandeses", Price: decimal.NewFromInt(4), Stock: 2},
		{ID: "C", Name: "Orquídea", Category: "Flores", Description: "Agotada por temporada", Price: decimal.NewFromInt(7), Stock: 0},
	})

	sessions := session.NewRegistry(checkout.Config{
		ShippingCost:    decimal.NewFromInt(20),
		Finalizer:       order.NewFinalizer("5215512345678", maxMessageLen),
		DeliveryWindows: checkout.DefaultDeliveryWindows,
	})

	return transport.NewRouter(store, sessions, summary.NewService(""), checkout.DefaultDeliveryWindows)
}

func doRequest(t *testing.T, router *chi.Mux, method, path, body, sessionID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if sessionID != "" {
		req.Header.Set(handler.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type stateResponse struct {
	Step         string `json:"step"`
	ItemCount    int    `json:"item_count"`
	Subtotal     string `json:"subtotal"`
	ShippingCost string `json:"shipping_cost"`
	Total        string `json:"total"`
	Items        []struct {
		Quantity int `json:"quantity"`
		Product  struct {
			ID string `json:"id"`
		} `json:"product"`
	} `json:"items"`
	Order *struct {
		ID    string `json:"id"`
		Total string `json:"total"`
	} `json:"order"`
	WhatsAppLink string `json:"whatsapp_link"`
	Warning      string `json:"warning"`
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) stateResponse {
	t.Helper()

	var st stateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	return st
}

func sessionID(w *httptest.ResponseRecorder) string {
	return w.Result().Header.Get(handler.SessionHeader)
}
