// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Runner matches the poller's explicit lifecycle: Start launches the work,
// Stop waits for it to wind down.
type Runner interface {
	Start(ctx context.Context) error
	Stop()
}

// PollerService wraps a Runner as a supervised service.
type PollerService struct {
	runner Runner
	name   string
}

// NewPollerService creates a poller service wrapper. name identifies the
// service in supervisor logs.
func NewPollerService(runner Runner, name string) *PollerService {
	return &PollerService{runner: runner, name: name}
}

// Serve implements suture.Service. It starts the poller, blocks until the
// context is canceled, then stops it and waits for the in-flight cycle.
func (s *PollerService) Serve(ctx context.Context) error {
	if err := s.runner.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.runner.Stop()
	return ctx.Err()
}

// String implements fmt.Stringer for suture's logging.
func (s *PollerService) String() string { return s.name }

// HTTPService wraps the status server as a supervised service.
type HTTPService struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewHTTPService creates an HTTP service wrapper.
func NewHTTPService(server *http.Server, shutdownTimeout time.Duration) *HTTPService {
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service. On context cancellation the server gets
// a bounded graceful shutdown before the method returns.
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// String implements fmt.Stringer for suture's logging.
func (s *HTTPService) String() string { return "status-server" }
