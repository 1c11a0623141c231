/**
 * @description
 * This file sets up the HTTP router for the checkout portal. It defines the
 * API endpoints, associates them with their handlers, and applies standard
 * middleware. CORS is wide open because the portal's browser front-end is
 * served from a different origin during development.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for chi.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CheckoutRoutes creates and returns the router for the checkout portal.
func CheckoutRoutes(h *CheckoutHandlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(180 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", h.StateHandler)
		r.Get("/history", h.HistoryHandler)

		r.Post("/merchants/refresh", h.RefreshMerchantsHandler)
		r.Post("/selection/merchant", h.SelectMerchantHandler)
		r.Post("/selection/product", h.SelectProductHandler)
		r.Post("/selection/currency", h.SelectCurrencyHandler)

		r.Post("/checkout/submit", h.SubmitHandler)
		r.Post("/checkout/investigate", h.InvestigateHandler)
	})

	return r
}
