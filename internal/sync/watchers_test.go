// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/portfolio-sync/internal/client"
	"github.com/tomtom215/portfolio-sync/internal/config"
	"github.com/tomtom215/portfolio-sync/internal/models"
)

// newContentServer serves a post list and counts how often the list
// endpoint is hit.
func newContentServer(t *testing.T, hits *atomic.Int32) (*httptest.Server, *client.Client) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":   1,
			"results": []models.BlogPost{{ID: "1", Title: "hello", Slug: "hello", Status: models.StatusPublished}},
		})
	}))
	t.Cleanup(server.Close)

	c := client.NewClient(config.APIConfig{
		BaseURL: server.URL,
		Version: "v1",
		Timeout: 5 * time.Second,
	}, client.NewTokenStore(client.NewMemoryTokenStorage()))
	return server, c
}

func TestWatchPostsLoadsImmediately(t *testing.T) {
	var hits atomic.Int32
	_, c := newContentServer(t, &hits)

	w := WatchPosts(context.Background(), c, nil, WatchOptions{})
	defer w.Close()

	state := w.State()
	checkIntEqual(t, "len(Data)", len(state.Data), 1)
	checkStringEqual(t, "Data[0].Title", state.Data[0].Title, "hello")
	checkTrue(t, "no error", state.Err == nil)
	checkIntEqual(t, "list hits", int(hits.Load()), 1)
}

func TestWatchPostsDefaultsToPublished(t *testing.T) {
	var gotStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"count": 0, "results": []models.BlogPost{}})
	}))
	defer server.Close()

	c := client.NewClient(config.APIConfig{BaseURL: server.URL, Version: "v1", Timeout: 5 * time.Second},
		client.NewTokenStore(client.NewMemoryTokenStorage()))

	w := WatchPosts(context.Background(), c, nil, WatchOptions{})
	defer w.Close()

	checkStringEqual(t, "status filter", gotStatus, models.StatusPublished)
}

func TestWatcherRefetchesOnContentUpdate(t *testing.T) {
	var hits atomic.Int32
	_, c := newContentServer(t, &hits)

	p := NewPoller(&fakeSource{}, time.Hour)
	w := WatchPosts(context.Background(), c, nil, WatchOptions{Poller: p})
	defer w.Close()

	checkIntEqual(t, "initial hits", int(hits.Load()), 1)

	p.Publish(ChannelContentUpdates, &models.SyncStatus{})
	waitFor(t, "refetch after content update", 2*time.Second, func() bool { return hits.Load() >= 2 })
}

func TestWatcherRealTimeFollowsSyncStatus(t *testing.T) {
	var hits atomic.Int32
	_, c := newContentServer(t, &hits)

	p := NewPoller(&fakeSource{}, time.Hour)
	w := WatchPosts(context.Background(), c, nil, WatchOptions{Poller: p, RealTime: true})
	defer w.Close()

	p.Publish(ChannelSyncStatus, &models.SyncStatus{})
	waitFor(t, "refetch after sync status", 2*time.Second, func() bool { return hits.Load() >= 2 })
}

func TestWatcherWithoutRealTimeIgnoresSyncStatus(t *testing.T) {
	var hits atomic.Int32
	_, c := newContentServer(t, &hits)

	p := NewPoller(&fakeSource{}, time.Hour)
	w := WatchPosts(context.Background(), c, nil, WatchOptions{Poller: p})
	defer w.Close()

	p.Publish(ChannelSyncStatus, &models.SyncStatus{})
	time.Sleep(100 * time.Millisecond)
	checkIntEqual(t, "hits after sync status", int(hits.Load()), 1)
}

func TestWatcherCloseStopsRefetching(t *testing.T) {
	var hits atomic.Int32
	_, c := newContentServer(t, &hits)

	p := NewPoller(&fakeSource{}, time.Hour)
	w := WatchPosts(context.Background(), c, nil, WatchOptions{Poller: p})

	w.Close()
	p.Publish(ChannelContentUpdates, &models.SyncStatus{})
	time.Sleep(100 * time.Millisecond)
	checkIntEqual(t, "hits after close", int(hits.Load()), 1)

	// Explicit refresh still works after Close.
	checkNoError(t, w.Refresh(context.Background()))
	checkIntEqual(t, "hits after explicit refresh", int(hits.Load()), 2)
}
