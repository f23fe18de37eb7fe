// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/portfolio-sync/internal/models"
)

// ListPosts fetches a page of blog posts. A nil filter fetches the backend
// default page.
func (c *Client) ListPosts(ctx context.Context, filter *PostFilter) (*Envelope[[]models.BlogPost], error) {
	return get[[]models.BlogPost](ctx, c, "posts", filter.query("/blog/posts/"))
}

// GetPost fetches a single blog post by slug.
func (c *Client) GetPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	env, err := get[models.BlogPost](ctx, c, "posts", "/blog/posts/"+slug+"/")
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CreatePost creates a blog post. Requires an authenticated client.
func (c *Client) CreatePost(ctx context.Context, draft models.BlogPost) (*models.BlogPost, error) {
	env, err := post[models.BlogPost](ctx, c, "posts", "/blog/", draft)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdatePost replaces a blog post by id. Requires an authenticated client.
func (c *Client) UpdatePost(ctx context.Context, id string, draft models.BlogPost) (*models.BlogPost, error) {
	env, err := put[models.BlogPost](ctx, c, "posts", "/blog/"+id+"/", draft)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListProjects fetches a page of portfolio projects.
func (c *Client) ListProjects(ctx context.Context, filter *ProjectFilter) (*Envelope[[]models.Project], error) {
	return get[[]models.Project](ctx, c, "projects", filter.query("/projects/"))
}

// GetProject fetches a single project by slug.
func (c *Client) GetProject(ctx context.Context, slug string) (*models.Project, error) {
	env, err := get[models.Project](ctx, c, "projects", "/projects/"+slug+"/")
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListNews fetches a page of news items.
func (c *Client) ListNews(ctx context.Context, filter *NewsFilter) (*Envelope[[]models.NewsItem], error) {
	return get[[]models.NewsItem](ctx, c, "news", filter.query("/news/"))
}

// GetNewsItem fetches a single news item by slug.
func (c *Client) GetNewsItem(ctx context.Context, slug string) (*models.NewsItem, error) {
	env, err := get[models.NewsItem](ctx, c, "news", "/news/"+slug+"/")
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListCourses fetches a page of courses.
func (c *Client) ListCourses(ctx context.Context, filter *CourseFilter) (*Envelope[[]models.Course], error) {
	return get[[]models.Course](ctx, c, "courses", filter.query("/courses/"))
}

// GetCourse fetches a single course by slug.
func (c *Client) GetCourse(ctx context.Context, slug string) (*models.Course, error) {
	env, err := get[models.Course](ctx, c, "courses", "/courses/"+slug+"/")
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListPages fetches a page of CMS pages.
func (c *Client) ListPages(ctx context.Context, filter *PageFilter) (*Envelope[[]models.Page], error) {
	return get[[]models.Page](ctx, c, "pages", filter.query("/pages/"))
}

// GetPage fetches a single CMS page by slug.
func (c *Client) GetPage(ctx context.Context, slug string) (*models.Page, error) {
	env, err := get[models.Page](ctx, c, "pages", "/pages/"+slug+"/")
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// LogEvent posts a fire-and-forget telemetry event. Failures are logged and
// swallowed so telemetry can never break a caller's flow.
func (c *Client) LogEvent(ctx context.Context, eventType string, eventData map[string]any) {
	event := models.Event{
		ID:        uuid.NewString(),
		EventType: eventType,
		EventData: eventData,
		Timestamp: time.Now().UTC(),
	}
	if _, err := post[struct{}](ctx, c, "events", "/events/log/", event); err != nil {
		c.logger.Warn().Err(err).Str("event_type", eventType).Msg("Failed to log event")
	}
}
