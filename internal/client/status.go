// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/portfolio-sync/internal/models"
)

// StatusAPI is the surface the poller depends on. Satisfied by *Client and
// by BreakerClient when circuit breaking is enabled.
type StatusAPI interface {
	PublicSyncStatus(ctx context.Context) (*models.SyncStatus, error)
	HealthCheck(ctx context.Context) (*models.HealthStatus, error)
}

// PublicSyncStatus assembles a content snapshot from the public list
// endpoints. Each count is fetched in parallel with page_size=1 so the
// paginated count field carries the total; a resource whose call fails
// contributes zero rather than failing the snapshot. The aggregate is
// always reported healthy because public reads need no privileges.
func (c *Client) PublicSyncStatus(ctx context.Context) (*models.SyncStatus, error) {
	published := models.StatusPublished
	counts := [4]int{}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		env, err := c.ListPosts(ctx, &PostFilter{Status: published, PageSize: 1})
		counts[0] = countOrZero(c, "posts", env, err)
	}()
	go func() {
		defer wg.Done()
		env, err := c.ListProjects(ctx, &ProjectFilter{PageSize: 1})
		counts[1] = countOrZero(c, "projects", env, err)
	}()
	go func() {
		defer wg.Done()
		env, err := c.ListNews(ctx, &NewsFilter{PageSize: 1})
		counts[2] = countOrZero(c, "news", env, err)
	}()
	go func() {
		defer wg.Done()
		env, err := c.ListCourses(ctx, &CourseFilter{PageSize: 1})
		counts[3] = countOrZero(c, "courses", env, err)
	}()
	wg.Wait()

	return &models.SyncStatus{
		Status: models.SyncHealthy,
		PublishedContent: models.PublishedContent{
			BlogPosts: counts[0],
			Projects:  counts[1],
			NewsItems: counts[2],
			Courses:   counts[3],
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

func countOrZero[T any](c *Client, resource string, env *Envelope[[]T], err error) int {
	if err != nil {
		c.logger.Warn().Err(err).Str("resource", resource).Msg("Count fetch failed, reporting zero")
		return 0
	}
	return env.ItemCount()
}

// HealthCheck probes backend reachability with a minimal public list call.
// Any HTTP response, even an error status, proves the backend is up; only
// a transport failure degrades the result.
func (c *Client) HealthCheck(ctx context.Context) (*models.HealthStatus, error) {
	now := time.Now().UTC()
	_, err := c.ListProjects(ctx, &ProjectFilter{PageSize: 1})
	switch {
	case err == nil:
		return &models.HealthStatus{Status: models.HealthOK, LastCheck: now}, nil
	case IsAPIError(err):
		return &models.HealthStatus{Status: models.HealthOK, LastCheck: now}, nil
	default:
		return &models.HealthStatus{Status: models.HealthDegraded, LastCheck: now, Details: err.Error()}, err
	}
}

// ContentSyncStatus fetches the backend-computed sync report. Requires an
// authenticated client with dashboard access.
func (c *Client) ContentSyncStatus(ctx context.Context) (*models.ContentSyncStatus, error) {
	env, err := get[models.ContentSyncStatus](ctx, c, "dashboard", "/dashboard/content-sync-status/")
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// AnalyticsSummary fetches the aggregate traffic report. Requires an
// authenticated client with dashboard access.
func (c *Client) AnalyticsSummary(ctx context.Context, days int) (*models.AnalyticsSummary, error) {
	endpoint := newQueryBuilder().addInt("days", days).encode("/dashboard/analytics/summary/")
	env, err := get[models.AnalyticsSummary](ctx, c, "dashboard", endpoint)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}
