// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/portfolio-sync/internal/client"
	"github.com/tomtom215/portfolio-sync/internal/logging"
	"github.com/tomtom215/portfolio-sync/internal/models"
)

// StatusSource exposes the latest poll snapshot.
type StatusSource interface {
	LastStatus() *models.SyncStatus
}

// HealthSource exposes the latest backend health probe. Optional.
type HealthSource interface {
	LastHealth() *models.HealthStatus
}

// BreakerState reports the upstream circuit breaker state. Optional.
type BreakerState interface {
	State() string
}

// Handler serves the status endpoints.
type Handler struct {
	poller  StatusSource
	health  HealthSource
	tokens  *client.TokenStore
	breaker BreakerState
}

// NewHandler creates a handler. health, tokens, and breaker may be nil when
// the corresponding feature is disabled.
func NewHandler(poller StatusSource, health HealthSource, tokens *client.TokenStore, breaker BreakerState) *Handler {
	return &Handler{poller: poller, health: health, tokens: tokens, breaker: breaker}
}

// Liveness reports that the process is up.
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether at least one poll cycle has succeeded. Before
// that the daemon has nothing to serve and returns 503.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.poller.LastStatus() == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "waiting for first poll"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// statusResponse is the /api/v1/status body.
type statusResponse struct {
	Sync            *models.SyncStatus   `json:"sync"`
	Health          *models.HealthStatus `json:"health,omitempty"`
	CircuitBreaker  string               `json:"circuit_breaker,omitempty"`
	Authenticated   bool                 `json:"authenticated"`
	AccessExpiresAt *time.Time           `json:"access_expires_at,omitempty"`
}

// Status serves the latest sync snapshot plus daemon-side auth and breaker
// detail.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Sync: h.poller.LastStatus()}

	if h.health != nil {
		resp.Health = h.health.LastHealth()
	}
	if h.breaker != nil {
		resp.CircuitBreaker = h.breaker.State()
	}
	if h.tokens != nil && h.tokens.AccessToken() != "" {
		resp.Authenticated = true
		if exp, ok := h.tokens.AccessTokenExpiry(); ok {
			resp.AccessExpiresAt = &exp
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}
