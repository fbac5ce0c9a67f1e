package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
	"github.com/jrmolina/tienda-whatsapp/internal/session"
)

// CartHandler exposes the cart engine over HTTP. Every response carries the
// recomputed session state so the client never works from stale totals.
type CartHandler struct {
	sessions *session.Registry
	store    *catalog.Store
}

func NewCartHandler(sessions *session.Registry, store *catalog.Store) *CartHandler {
	return &CartHandler{sessions: sessions, store: store}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.State()))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	p, found := h.store.Get(req.ProductID)
	if !found {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.AddItem(p)))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.SetQuantity(id, req.Quantity)))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.RemoveItem(id)))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(sess.ClearCart()))
}
