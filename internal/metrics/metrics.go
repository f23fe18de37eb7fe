// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

// Package metrics provides Prometheus instrumentation for the API client,
// the polling synchronizer, and the local status server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API client metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_api_requests_total",
			Help: "Total number of CMS API requests by resource, method, and status code",
		},
		[]string{"resource", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cms_api_request_duration_seconds",
			Help:    "Duration of CMS API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)

	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_token_refreshes_total",
			Help: "Total number of access token refresh attempts by outcome",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	// Polling synchronizer metrics

	PollCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_poll_cycles_total",
			Help: "Total number of poll cycles by outcome",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	PollSubscribers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_poll_subscribers",
			Help: "Current number of registered poll subscribers per channel",
		},
		[]string{"channel"},
	)

	PollNotificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_poll_notifications_total",
			Help: "Total number of subscriber callbacks invoked",
		},
	)

	// Circuit breaker metrics

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker by outcome",
		},
		[]string{"name", "outcome"}, // "success", "failure", "rejected"
	)

	// Status server metrics

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of status server requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of status server requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)
