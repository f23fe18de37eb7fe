// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

// Package main is the entry point for the portfolio-sync daemon.
//
// Portfolio Sync keeps a local, continuously refreshed view of the
// Portfolio CMS backend. It polls the public content endpoints, assembles
// an aggregate status snapshot, and serves it over a small local HTTP
// surface alongside Prometheus metrics.
//
// # Application Architecture
//
// The daemon initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered loading (env > config file > defaults)
//  2. Token storage: BadgerDB when TOKEN_STORE_PATH is set, else memory
//  3. API client: typed CMS client with automatic token refresh
//  4. Circuit breaker: optional gobreaker wrapper around the poll source
//  5. Poller + health prober: periodic status and reachability cycles
//  6. Status server: /healthz, /readyz, /metrics, /api/v1/status
//  7. Supervisor tree: suture restarts crashed services with backoff
//
// # Configuration
//
//	export API_BASE_URL=https://cms.example.com
//	export AUTH_USERNAME=admin          # optional, enables admin endpoints
//	export AUTH_PASSWORD=secret
//	export TOKEN_STORE_PATH=/var/lib/portfolio-sync/tokens
//	export POLL_INTERVAL=5s
//	export HTTP_PORT=8085
//	./portfolio-sync
//
// # Signal Handling
//
// The daemon shuts down gracefully on SIGINT and SIGTERM: the poller
// finishes its in-flight cycle and the HTTP server drains connections
// within the configured timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/portfolio-sync/internal/api"
	"github.com/tomtom215/portfolio-sync/internal/client"
	"github.com/tomtom215/portfolio-sync/internal/config"
	"github.com/tomtom215/portfolio-sync/internal/logging"
	"github.com/tomtom215/portfolio-sync/internal/models"
	"github.com/tomtom215/portfolio-sync/internal/supervisor"
	"github.com/tomtom215/portfolio-sync/internal/sync"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("base_url", cfg.API.BaseURL).
		Dur("poll_interval", cfg.Poll.Interval).
		Bool("circuit_breaker", cfg.Poll.CircuitBreaker).
		Msg("Configuration loaded")

	// Token storage: durable when a path is configured, memory otherwise.
	var storage client.TokenStorage
	if cfg.Auth.TokenStorePath != "" {
		badgerStorage, err := client.NewBadgerTokenStorage(cfg.Auth.TokenStorePath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Auth.TokenStorePath).Msg("Failed to open token store")
		}
		defer func() {
			if err := badgerStorage.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing token store")
			}
		}()
		storage = badgerStorage
		logging.Info().Str("path", cfg.Auth.TokenStorePath).Msg("Durable token storage enabled")
	} else {
		storage = client.NewMemoryTokenStorage()
		logging.Info().Msg("In-memory token storage (tokens lost on restart)")
	}

	tokens := client.NewTokenStore(storage)

	opts := []client.Option{}
	if cfg.API.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(cfg.API.RateLimit))
	}
	apiClient := client.NewClient(cfg.API, tokens, opts...)

	// Startup login is best-effort: hydrated tokens may already cover us,
	// and the refresh path recovers from an expired access token.
	if cfg.Auth.Username != "" && !tokens.HasRefreshToken() {
		loginCtx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
		result, err := apiClient.Login(loginCtx, models.LoginCredentials{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
		cancel()
		if err != nil {
			logging.Warn().Err(err).Msg("Startup login failed, continuing unauthenticated")
		} else {
			logging.Info().Str("username", result.User.Username).Str("role", result.User.Role).Msg("Logged in")
		}
	}

	var source client.StatusAPI = apiClient
	var breaker api.BreakerState
	if cfg.Poll.CircuitBreaker {
		bc := client.NewBreakerClient(apiClient)
		source = bc
		breaker = bc
		logging.Info().Msg("Circuit breaker enabled")
	}

	poller := sync.NewPoller(source, cfg.Poll.Interval)
	prober := sync.NewHealthProber(source, cfg.Poll.HealthInterval)

	handler := api.NewHandler(poller, prober, tokens, breaker)
	router := api.NewRouter(handler)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.Add(supervisor.NewPollerService(poller, "sync-poller"))
	tree.Add(supervisor.NewPollerService(prober, "health-prober"))
	tree.Add(supervisor.NewHTTPService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("Status server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
	}

	logging.Info().Msg("Daemon stopped gracefully")
}
