// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package sync

import (
	"context"
	"sync"
	"time"
)

// State is a point-in-time view of a fetcher: the last good data, whether a
// fetch is in flight, the last error, and when data last changed. Data and
// Err can both be set; a failed refetch keeps the previous data visible.
type State[T any] struct {
	Data        T
	Loading     bool
	Err         error
	LastUpdated time.Time
}

// FetchFunc loads one value. Implementations typically close over an API
// client call.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Fetcher serializes loads of a single value and guards against stale
// completions: when Refetch is called while a fetch is in flight, the older
// fetch's result is discarded no matter which HTTP response lands first.
type Fetcher[T any] struct {
	fetch FetchFunc[T]

	mu         sync.RWMutex
	generation uint64
	state      State[T]
	onChange   func(State[T])
}

// NewFetcher creates a fetcher around fetch. No load is started.
func NewFetcher[T any](fetch FetchFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{fetch: fetch}
}

// OnChange registers a callback invoked after every state transition, with
// a copy of the new state. At most one callback; a second call replaces the
// first.
func (f *Fetcher[T]) OnChange(fn func(State[T])) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

// State returns a copy of the current state.
func (f *Fetcher[T]) State() State[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Fetch runs one load synchronously. If another Fetch starts while this one
// is waiting on the network, this one's result is dropped on completion.
// The error is also returned directly for callers that don't watch state.
func (f *Fetcher[T]) Fetch(ctx context.Context) error {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.state.Loading = true
	f.state.Err = nil
	changed := f.state
	cb := f.onChange
	f.mu.Unlock()

	if cb != nil {
		cb(changed)
	}

	data, err := f.fetch(ctx)

	f.mu.Lock()
	if gen != f.generation {
		// A newer fetch superseded this one; its completion wins.
		f.mu.Unlock()
		return nil
	}
	f.state.Loading = false
	if err != nil {
		f.state.Err = err
	} else {
		f.state.Data = data
		f.state.Err = nil
		f.state.LastUpdated = time.Now().UTC()
	}
	changed = f.state
	cb = f.onChange
	f.mu.Unlock()

	if cb != nil {
		cb(changed)
	}
	return err
}

// Refetch starts a load on a new goroutine. Useful from subscriber
// callbacks, which must not block the poll loop.
func (f *Fetcher[T]) Refetch(ctx context.Context) {
	go func() { _ = f.Fetch(ctx) }()
}
