// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/portfolio-sync/internal/models"
)

// stubStatusAPI returns canned results for the status surface.
type stubStatusAPI struct {
	status    *models.SyncStatus
	health    *models.HealthStatus
	statusErr error
	healthErr error
}

func (s *stubStatusAPI) PublicSyncStatus(ctx context.Context) (*models.SyncStatus, error) {
	return s.status, s.statusErr
}

func (s *stubStatusAPI) HealthCheck(ctx context.Context) (*models.HealthStatus, error) {
	return s.health, s.healthErr
}

func TestBreakerClientPassesThroughSuccess(t *testing.T) {
	stub := &stubStatusAPI{
		status: &models.SyncStatus{Status: models.SyncHealthy, Timestamp: time.Now()},
		health: &models.HealthStatus{Status: models.HealthOK},
	}
	bc := NewBreakerClient(stub)

	status, err := bc.PublicSyncStatus(context.Background())
	checkNoError(t, err)
	checkStringEqual(t, "Status", status.Status, models.SyncHealthy)

	health, err := bc.HealthCheck(context.Background())
	checkNoError(t, err)
	checkStringEqual(t, "Health", health.Status, models.HealthOK)

	checkStringEqual(t, "State", bc.State(), "closed")
}

func TestBreakerClientPropagatesErrors(t *testing.T) {
	wantErr := errors.New("backend down")
	bc := NewBreakerClient(&stubStatusAPI{statusErr: wantErr})

	_, err := bc.PublicSyncStatus(context.Background())
	checkError(t, err)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped backend error, got %v", err)
	}
}

func TestBreakerClientOpensAfterFailures(t *testing.T) {
	bc := NewBreakerClient(&stubStatusAPI{statusErr: errors.New("down")})

	// The breaker needs at least 10 requests at a 60% failure rate to trip.
	for i := 0; i < 10; i++ {
		_, _ = bc.PublicSyncStatus(context.Background())
	}

	checkStringEqual(t, "State", bc.State(), "open")

	_, err := bc.PublicSyncStatus(context.Background())
	checkError(t, err)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState from open breaker, got %v", err)
	}
}

func TestStateConversions(t *testing.T) {
	checkStringEqual(t, "closed", stateToString(gobreaker.StateClosed), "closed")
	checkStringEqual(t, "half-open", stateToString(gobreaker.StateHalfOpen), "half-open")
	checkStringEqual(t, "open", stateToString(gobreaker.StateOpen), "open")

	if stateToFloat(gobreaker.StateClosed) != 0 || stateToFloat(gobreaker.StateHalfOpen) != 1 || stateToFloat(gobreaker.StateOpen) != 2 {
		t.Error("stateToFloat mapping is wrong")
	}
}

func TestCastResultTypeMismatch(t *testing.T) {
	_, err := castResult[models.SyncStatus]("not a status", nil)
	checkError(t, err)
}
