// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

// Package api serves the daemon's local status surface: liveness and
// readiness probes, Prometheus metrics, and a JSON view of the latest
// sync snapshot.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires the status server's routes to its data sources.
type Router struct {
	handler *Handler
}

// NewRouter creates a router over the given handler.
func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

// Setup configures all routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", router.handler.Liveness)
	r.Get("/readyz", router.handler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(PrometheusMetrics())
		r.Get("/status", router.handler.Status)
	})

	return r
}
