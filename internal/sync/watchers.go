// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package sync

import (
	"context"

	"github.com/tomtom215/portfolio-sync/internal/client"
	"github.com/tomtom215/portfolio-sync/internal/models"
)

// WatchOptions controls how a content watcher stays fresh. With a nil
// Poller the watcher only refreshes on explicit Refresh calls. RealTime
// additionally re-fetches on every sync_status cycle, not just on
// content_updates events.
type WatchOptions struct {
	Poller   *Poller
	RealTime bool
}

// Watcher keeps a content list loaded and re-fetches it when the poller
// reports a change. Close cancels the poller subscriptions; the watcher
// remains usable for explicit Refresh afterwards.
type Watcher[T any] struct {
	fetcher *Fetcher[[]T]
	subs    []*Subscription
}

func newWatcher[T any](ctx context.Context, fetch FetchFunc[[]T], opts WatchOptions) *Watcher[T] {
	w := &Watcher[T]{fetcher: NewFetcher(fetch)}
	_ = w.fetcher.Fetch(ctx)

	if opts.Poller != nil {
		refetch := func(*models.SyncStatus) { w.fetcher.Refetch(ctx) }
		w.subs = append(w.subs, opts.Poller.Subscribe(ChannelContentUpdates, refetch))
		if opts.RealTime {
			w.subs = append(w.subs, opts.Poller.Subscribe(ChannelSyncStatus, refetch))
		}
	}
	return w
}

// State returns the current list state.
func (w *Watcher[T]) State() State[[]T] {
	return w.fetcher.State()
}

// OnChange registers a callback for state transitions.
func (w *Watcher[T]) OnChange(fn func(State[[]T])) {
	w.fetcher.OnChange(fn)
}

// Refresh forces a synchronous re-fetch.
func (w *Watcher[T]) Refresh(ctx context.Context) error {
	return w.fetcher.Fetch(ctx)
}

// Close cancels the poller subscriptions. Idempotent.
func (w *Watcher[T]) Close() {
	for _, s := range w.subs {
		s.Cancel()
	}
	w.subs = nil
}

// WatchPosts keeps a blog post list loaded. A nil filter watches published
// posts, matching what anonymous readers see.
func WatchPosts(ctx context.Context, c *client.Client, filter *client.PostFilter, opts WatchOptions) *Watcher[models.BlogPost] {
	if filter == nil {
		filter = &client.PostFilter{Status: models.StatusPublished}
	}
	return newWatcher(ctx, func(ctx context.Context) ([]models.BlogPost, error) {
		env, err := c.ListPosts(ctx, filter)
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	}, opts)
}

// WatchProjects keeps a project list loaded.
func WatchProjects(ctx context.Context, c *client.Client, filter *client.ProjectFilter, opts WatchOptions) *Watcher[models.Project] {
	return newWatcher(ctx, func(ctx context.Context) ([]models.Project, error) {
		env, err := c.ListProjects(ctx, filter)
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	}, opts)
}

// WatchNews keeps a news list loaded.
func WatchNews(ctx context.Context, c *client.Client, filter *client.NewsFilter, opts WatchOptions) *Watcher[models.NewsItem] {
	return newWatcher(ctx, func(ctx context.Context) ([]models.NewsItem, error) {
		env, err := c.ListNews(ctx, filter)
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	}, opts)
}

// WatchCourses keeps a course list loaded.
func WatchCourses(ctx context.Context, c *client.Client, filter *client.CourseFilter, opts WatchOptions) *Watcher[models.Course] {
	return newWatcher(ctx, func(ctx context.Context) ([]models.Course, error) {
		env, err := c.ListCourses(ctx, filter)
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	}, opts)
}
