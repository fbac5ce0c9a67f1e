package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
	"github.com/jrmolina/tienda-whatsapp/internal/checkout"
	"github.com/jrmolina/tienda-whatsapp/internal/order"
	"github.com/jrmolina/tienda-whatsapp/internal/session"
	"github.com/jrmolina/tienda-whatsapp/internal/summary"
	"github.com/jrmolina/tienda-whatsapp/internal/transport"
	"github.com/jrmolina/tienda-whatsapp/pkg/config"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	products, err := catalog.NewLoader(cfg.Catalog.FeedURL).Load(loadCtx)
	cancel()
	if err != nil {
		// The storefront still comes up; it just has nothing to sell until
		// the process is restarted with a reachable feed.
		log.Error().Err(err).Msg("Failed to load catalog, starting with an empty product list")
	} else {
		log.Info().Int("products", len(products)).Msg("Catalog loaded")
	}
	store := catalog.NewStore(products)

	sessions := session.NewRegistry(checkout.Config{
		ShippingCost:    cfg.Order.ShippingCost,
		Finalizer:       order.NewFinalizer(cfg.Order.WhatsAppNumber, cfg.Order.MaxMessageLength),
		DeliveryWindows: checkout.DefaultDeliveryWindows,
	})

	summaries := summary.NewService(cfg.Summary.APIKey)
	if !summaries.Enabled() {
		log.Warn().Msg("GEMINI_API_KEY not set, product summaries disabled")
	}

	router := transport.NewRouter(store, sessions, summaries, checkout.DefaultDeliveryWindows)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
