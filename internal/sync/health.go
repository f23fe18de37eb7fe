// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package sync

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/portfolio-sync/internal/client"
	"github.com/tomtom215/portfolio-sync/internal/logging"
	"github.com/tomtom215/portfolio-sync/internal/models"
)

// HealthProber periodically probes backend reachability. It runs on a
// slower cadence than the status poller; its result feeds the status
// server, it never gates polling.
type HealthProber struct {
	source   client.StatusAPI
	interval time.Duration

	mu       sync.RWMutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
	last     *models.HealthStatus
}

// NewHealthProber creates a prober over source. Call Start to begin.
func NewHealthProber(source client.StatusAPI, interval time.Duration) *HealthProber {
	return &HealthProber{source: source, interval: interval}
}

// LastHealth returns the most recent probe result, or nil before the first
// probe completes.
func (p *HealthProber) LastHealth() *models.HealthStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Start begins probing. The first probe happens immediately. Starting a
// running prober is a no-op.
func (p *HealthProber) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.stopChan = make(chan struct{})
	p.mu.Unlock()

	logging.Info().Dur("interval", p.interval).Msg("Starting health prober")

	p.wg.Add(1)
	go p.probeLoop(ctx)

	return nil
}

// Stop stops probing and waits for the in-flight probe. Idempotent.
func (p *HealthProber) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()
	logging.Info().Msg("Health prober stopped")
}

func (p *HealthProber) probeLoop(ctx context.Context) {
	defer p.wg.Done()

	p.probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *HealthProber) probe(ctx context.Context) {
	health, err := p.source.HealthCheck(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Backend unreachable")
		health = &models.HealthStatus{Status: models.HealthDegraded, LastCheck: time.Now().UTC()}
	}

	p.mu.Lock()
	prev := p.last
	p.last = health
	p.mu.Unlock()

	if prev != nil && prev.Status != health.Status {
		logging.Info().Str("from", prev.Status).Str("to", health.Status).Msg("Backend health changed")
	}
}
