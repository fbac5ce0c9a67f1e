package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
	"github.com/jrmolina/tienda-whatsapp/internal/summary"
)

// ProductHandler serves the catalog and the optional AI blurbs.
type ProductHandler struct {
	store     *catalog.Store
	summaries *summary.Service
}

func NewProductHandler(store *catalog.Store, summaries *summary.Service) *ProductHandler {
	return &ProductHandler{store: store, summaries: summaries}
}

type productView struct {
	catalog.Product
	LowStock bool `json:"low_stock"`
}

func newProductView(p catalog.Product) productView {
	return productView{Product: p, LowStock: p.LowStock()}
}

// List returns the catalog, optionally filtered by the q query parameter.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.store.Search(r.URL.Query().Get("q"))

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	p, ok := h.store.Get(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newProductView(p))
}

// Summarize returns an AI-generated blurb for the product. Failures here never
// affect the rest of the storefront.
func (h *ProductHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := h.store.Get(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	text, err := h.summaries.Summarize(r.Context(), p)
	if err != nil {
		if errors.Is(err, summary.ErrDisabled) {
			http.Error(w, "summaries are not available", http.StatusServiceUnavailable)
			return
		}
		log.Info().Msgf("Failed to generate summary: %v", err)
		http.Error(w, "failed to generate summary", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"product_id": p.ID, "summary": text})
}
