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
	"github.com/tomtom215/portfolio-sync/internal/metrics"
	"github.com/tomtom215/portfolio-sync/internal/models"
)

// Channel names used by the poller and the content watchers.
const (
	ChannelSyncStatus     = "sync_status"
	ChannelContentUpdates = "content_updates"
)

// Callback receives a status snapshot. Callbacks run on the poller
// goroutine; long work belongs on the subscriber's side.
type Callback func(*models.SyncStatus)

// Subscription is the handle returned by Subscribe. Cancel is idempotent.
type Subscription struct {
	poller  *Poller
	channel string
	sub     *subscriber
}

// Cancel removes the subscription and waits for an in-flight notification
// to this subscriber to return. After Cancel returns the callback is never
// invoked again, even by a fan-out that snapshotted the subscriber list
// before the removal. Safe to call more than once. Must not be called from
// inside the callback itself.
func (s *Subscription) Cancel() {
	if s == nil || s.poller == nil {
		return
	}
	s.poller.unsubscribe(s.channel, s.sub.id)
	s.sub.mu.Lock()
	s.sub.canceled = true
	s.sub.mu.Unlock()
	s.poller = nil
}

type subscriber struct {
	id uint64
	fn Callback

	// mu is held while the callback runs; canceled is checked under it so
	// Cancel synchronizes with in-flight delivery.
	mu       sync.Mutex
	canceled bool
}

// Poller periodically fetches the aggregate sync status and fans it out to
// channel subscribers. A failed cycle doubles the wait before the next
// attempt; a successful cycle restores the base interval.
type Poller struct {
	source   client.StatusAPI
	interval time.Duration

	mu          sync.RWMutex
	running     bool
	stopChan    chan struct{}
	wg          sync.WaitGroup
	nextID      uint64
	subscribers map[string][]*subscriber
	lastStatus  *models.SyncStatus
}

// NewPoller creates a poller over source. It does not start polling;
// call Start.
func NewPoller(source client.StatusAPI, interval time.Duration) *Poller {
	return &Poller{
		source:      source,
		interval:    interval,
		subscribers: make(map[string][]*subscriber),
	}
}

// Subscribe registers fn on a channel. Subscribers on the same channel are
// notified in registration order. The returned handle cancels exactly this
// registration; registering the same function twice yields two independent
// subscriptions.
func (p *Poller) Subscribe(channel string, fn Callback) *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	sub := &subscriber{id: p.nextID, fn: fn}
	p.subscribers[channel] = append(p.subscribers[channel], sub)
	metrics.PollSubscribers.WithLabelValues(channel).Set(float64(len(p.subscribers[channel])))

	return &Subscription{poller: p, channel: channel, sub: sub}
}

func (p *Poller) unsubscribe(channel string, id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.subscribers[channel]
	for i, s := range subs {
		if s.id == id {
			p.subscribers[channel] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	metrics.PollSubscribers.WithLabelValues(channel).Set(float64(len(p.subscribers[channel])))
}

// Publish delivers a snapshot to every subscriber of a channel, in
// registration order. Used by the poller itself for sync_status cycles and
// by callers that want to push ad-hoc updates (content_updates).
func (p *Poller) Publish(channel string, status *models.SyncStatus) {
	p.mu.RLock()
	subs := make([]*subscriber, len(p.subscribers[channel]))
	copy(subs, p.subscribers[channel])
	p.mu.RUnlock()

	for _, s := range subs {
		p.notify(channel, s, status)
	}
}

// notify invokes one callback, recovering a panic so one bad subscriber
// cannot take down the poll loop or starve its siblings. The callback runs
// under the subscriber's lock: a Cancel that returned before this point has
// set canceled, and a Cancel racing with the callback blocks until it
// finishes.
func (p *Poller) notify(channel string, s *subscriber, status *models.SyncStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canceled {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Str("channel", channel).Interface("panic", r).Msg("Subscriber callback panicked")
		}
	}()
	metrics.PollNotificationsTotal.Inc()
	s.fn(status)
}

// LastStatus returns the most recent successful snapshot, or nil before the
// first successful cycle.
func (p *Poller) LastStatus() *models.SyncStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastStatus
}

// Start begins the polling loop. The first poll happens immediately.
// Starting a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.stopChan = make(chan struct{})
	p.mu.Unlock()

	logging.Info().Dur("interval", p.interval).Msg("Starting sync status poller")

	p.wg.Add(1)
	go p.pollLoop(ctx)

	return nil
}

// Stop stops the polling loop and waits for the in-flight cycle to finish.
// Stopping a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()
	logging.Info().Msg("Sync status poller stopped")
}

// pollLoop runs the periodic polling. A failed cycle waits 2x the base
// interval before the next attempt; success restores the base interval.
// The backoff is a single step, not cumulative.
func (p *Poller) pollLoop(ctx context.Context) {
	defer p.wg.Done()

	wait := p.interval
	if p.poll(ctx) {
		wait = p.interval
	} else {
		wait = 2 * p.interval
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-timer.C:
			if p.poll(ctx) {
				timer.Reset(p.interval)
			} else {
				timer.Reset(2 * p.interval)
			}
		}
	}
}

// poll runs one fetch cycle and reports whether it succeeded.
func (p *Poller) poll(ctx context.Context) bool {
	status, err := p.source.PublicSyncStatus(ctx)
	if err != nil {
		metrics.PollCyclesTotal.WithLabelValues("failure").Inc()
		logging.Warn().Err(err).Msg("Poll cycle failed, backing off")
		return false
	}

	p.mu.Lock()
	p.lastStatus = status
	p.mu.Unlock()

	metrics.PollCyclesTotal.WithLabelValues("success").Inc()
	p.Publish(ChannelSyncStatus, status)
	return true
}
