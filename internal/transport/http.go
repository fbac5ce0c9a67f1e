package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
	"github.com/jrmolina/tienda-whatsapp/internal/handler"
	"github.com/jrmolina/tienda-whatsapp/internal/session"
	"github.com/jrmolina/tienda-whatsapp/internal/summary"
)

func NewRouter(store *catalog.Store, sessions *session.Registry, summaries *summary.Service, deliveryWindows []string) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	products := handler.NewProductHandler(store, summaries)
	carts := handler.NewCartHandler(sessions, store)
	checkouts := handler.NewCheckoutHandler(sessions, deliveryWindows)

	r.Get("/products", products.List)
	r.Get("/products/{id}", products.Get)
	r.Get("/products/{id}/summary", products.Summarize)

	r.Get("/delivery/windows", checkouts.DeliveryWindows)

	r.Get("/cart", carts.Get)
	r.Post("/cart/items", carts.AddItem)
	r.Put("/cart/items/{id}", carts.SetQuantity)
	r.Delete("/cart/items/{id}", carts.RemoveItem)
	r.Delete("/cart", carts.Clear)

	r.Get("/checkout", checkouts.Get)
	r.Post("/checkout/summary", checkouts.ProceedToSummary)
	r.Post("/checkout/back", checkouts.GoBack)
	r.Post("/checkout/delivery", checkouts.ProceedToDelivery)
	r.Post("/checkout/finalize", checkouts.Finalize)
	r.Post("/checkout/new-order", checkouts.StartNewOrder)
	r.Post("/checkout/home", checkouts.GoHome)

	return r
}
