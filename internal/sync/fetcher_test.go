// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFetcherInitialState(t *testing.T) {
	f := NewFetcher(func(ctx context.Context) (int, error) { return 42, nil })

	state := f.State()
	checkIntEqual(t, "Data", state.Data, 0)
	checkTrue(t, "not loading", !state.Loading)
	checkTrue(t, "no error", state.Err == nil)
	checkTrue(t, "zero LastUpdated", state.LastUpdated.IsZero())
}

func TestFetcherSuccess(t *testing.T) {
	f := NewFetcher(func(ctx context.Context) (int, error) { return 42, nil })

	checkNoError(t, f.Fetch(context.Background()))

	state := f.State()
	checkIntEqual(t, "Data", state.Data, 42)
	checkTrue(t, "not loading", !state.Loading)
	checkTrue(t, "no error", state.Err == nil)
	checkTrue(t, "LastUpdated set", !state.LastUpdated.IsZero())
}

func TestFetcherErrorKeepsPreviousData(t *testing.T) {
	var fail bool
	f := NewFetcher(func(ctx context.Context) (int, error) {
		if fail {
			return 0, errors.New("backend down")
		}
		return 42, nil
	})

	checkNoError(t, f.Fetch(context.Background()))
	goodUpdate := f.State().LastUpdated

	fail = true
	checkError(t, f.Fetch(context.Background()))

	state := f.State()
	checkIntEqual(t, "Data survives failure", state.Data, 42)
	checkError(t, state.Err)
	checkTrue(t, "LastUpdated unchanged on failure", state.LastUpdated.Equal(goodUpdate))
}

func TestFetcherLoadingTransitions(t *testing.T) {
	f := NewFetcher(func(ctx context.Context) (string, error) { return "done", nil })

	var mu sync.Mutex
	var transitions []bool
	f.OnChange(func(s State[string]) {
		mu.Lock()
		transitions = append(transitions, s.Loading)
		mu.Unlock()
	})

	checkNoError(t, f.Fetch(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	checkIntEqual(t, "transition count", len(transitions), 2)
	checkTrue(t, "first transition is loading", transitions[0])
	checkTrue(t, "second transition is settled", !transitions[1])
}

func TestFetcherStaleResultIsDiscarded(t *testing.T) {
	// The first fetch blocks until released; a second fetch completes first.
	// When the first finally lands it must be dropped, so the newer value
	// stays visible.
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	f := NewFetcher(func(ctx context.Context) (int, error) {
		mu.Lock()
		calls++
		mine := calls
		mu.Unlock()
		if mine == 1 {
			<-release
		}
		return mine, nil
	})

	firstDone := make(chan error, 1)
	go func() { firstDone <- f.Fetch(context.Background()) }()
	waitFor(t, "first fetch to start", 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	})

	checkNoError(t, f.Fetch(context.Background()))
	checkIntEqual(t, "newer fetch value", f.State().Data, 2)

	close(release)
	checkNoError(t, <-firstDone)

	// The stale completion must not overwrite the newer value.
	checkIntEqual(t, "value after stale completion", f.State().Data, 2)
	checkTrue(t, "not loading", !f.State().Loading)
}
