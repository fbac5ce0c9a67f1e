package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jrmolina/tienda-whatsapp/internal/checkout"
	"github.com/jrmolina/tienda-whatsapp/internal/order"
	"github.com/jrmolina/tienda-whatsapp/internal/session"
)

// CheckoutHandler drives the step machine. Guarded triggers that do not fire
// simply return the unchanged state; only validation failures are errors.
type CheckoutHandler struct {
	sessions        *session.Registry
	deliveryWindows []string
}

func NewCheckoutHandler(sessions *session.Registry, deliveryWindows []string) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, deliveryWindows: deliveryWindows}
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.State()))
}

func (h *CheckoutHandler) ProceedToSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.ProceedToSummary()))
}

func (h *CheckoutHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.GoBack()))
}

func (h *CheckoutHandler) ProceedToDelivery(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.ProceedToDelivery()))
}

func (h *CheckoutHandler) StartNewOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.StartNewOrder()))
}

func (h *CheckoutHandler) GoHome(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.GoHome()))
}

// DeliveryWindows lists the selectable delivery slots.
func (h *CheckoutHandler) DeliveryWindows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"windows": h.deliveryWindows})
}

type finalizeResponse struct {
	stateView
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
	Warning      string `json:"warning,omitempty"`
}

func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var details order.DeliveryDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}

	res, err := sess.Finalize(details)
	if err != nil {
		if errors.Is(err, checkout.ErrInvalidDeliveryDetails) {
			respondValidationError(w, err)
			return
		}
		http.Error(w, "failed to finalize order", http.StatusInternalServerError)
		return
	}

	// Guard did not fire (wrong step or empty cart): state is unchanged.
	if res == nil {
		writeJSON(w, http.StatusOK, newStateView(sess.State()))
		return
	}

	writeJSON(w, http.StatusOK, finalizeResponse{
		stateView:    newStateView(sess.State()),
		WhatsAppLink: res.Link,
		Warning:      res.Warning,
	})
}

func respondValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fieldErr := range fieldErrs {
			switch fieldErr.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", fieldErr.Field()))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", fieldErr.Field()))
			}
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
}
