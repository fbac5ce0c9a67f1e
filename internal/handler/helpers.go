package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jrmolina/tienda-whatsapp/internal/cart"
	"github.com/jrmolina/tienda-whatsapp/internal/checkout"
	"github.com/jrmolina/tienda-whatsapp/internal/order"
	"github.com/jrmolina/tienda-whatsapp/internal/session"
)

// SessionHeader carries the shopper's session id. The server echoes the
// canonical id back on every response so new sessions learn theirs.
const SessionHeader = "X-Session-ID"

type stateView struct {
	Step         string          `json:"step"`
	Items        []cart.Item     `json:"items"`
	ItemCount    int             `json:"item_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`
	Order        *order.Details  `json:"order,omitempty"`
}

func newStateView(st checkout.State) stateView {
	return stateView{
		Step:         st.Step.String(),
		Items:        st.Items,
		ItemCount:    st.ItemCount,
		Subtotal:     st.Subtotal,
		ShippingCost: st.Shipping,
		Total:        st.Total,
		Order:        st.Order,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Info().Msgf("Failed to encode response: %v", err)
	}
}

func resolveSession(reg *session.Registry, w http.ResponseWriter, r *http.Request) (*checkout.Session, bool) {
	sess, id, err := reg.Get(r.Header.Get(SessionHeader))
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve session")
		http.Error(w, "failed to resolve session", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set(SessionHeader, id)
	return sess, true
}
