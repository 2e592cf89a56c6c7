// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/autoinvoice/autoinvoice/internal/config"
	"github.com/autoinvoice/autoinvoice/internal/invoice"
	"github.com/autoinvoice/autoinvoice/internal/middleware"
)

// NewRouter builds the chi router with the full middleware stack and
// all routes. Recoverer sits outside RequestLogger so a handler panic
// is logged with its timing first, then converted to a 500 response.
func NewRouter(cfg *config.Config, processor *invoice.Processor) http.Handler {
	r := chi.NewRouter()

	chiMW := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimitRequests,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
		RateLimitDisabled:  cfg.Server.RateLimitDisabled,
	})

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chiMW.CORS())
	r.Use(chiMW.RateLimit())

	h := NewHandler(cfg, processor)

	r.Get("/", h.Root)
	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/invoices", h.CreateInvoice)
		r.Get("/invoices/{invoiceID}", h.GetInvoice)
	})

	return r
}
