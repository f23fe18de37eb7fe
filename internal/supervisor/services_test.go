// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/portfolio-sync/internal/logging"
)

type stubRunner struct {
	started  atomic.Bool
	stopped  atomic.Bool
	startErr error
}

func (r *stubRunner) Start(ctx context.Context) error {
	if r.startErr != nil {
		return r.startErr
	}
	r.started.Store(true)
	return nil
}

func (r *stubRunner) Stop() { r.stopped.Store(true) }

func TestPollerServiceLifecycle(t *testing.T) {
	runner := &stubRunner{}
	svc := NewPollerService(runner, "test-poller")

	if svc.String() != "test-poller" {
		t.Errorf("String: got %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for !runner.started.Load() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !runner.started.Load() {
		t.Fatal("runner should have started")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if !runner.stopped.Load() {
		t.Error("runner should have been stopped")
	}
}

func TestPollerServiceStartFailure(t *testing.T) {
	wantErr := errors.New("start failed")
	svc := NewPollerService(&stubRunner{startErr: wantErr}, "failing")

	err := svc.Serve(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("expected start error, got %v", err)
	}
}

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 || cfg.FailureDecay != 30.0 {
		t.Errorf("unexpected failure parameters: %+v", cfg)
	}
	if cfg.FailureBackoff != 15*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected timing parameters: %+v", cfg)
	}
}

func TestNewTreeAppliesDefaultsToZeroConfig(t *testing.T) {
	// A zero config must not produce a supervisor with zero backoff.
	tree := NewTree(logging.NewSlogLogger(), TreeConfig{})
	if tree == nil {
		t.Fatal("expected a supervisor")
	}
}
