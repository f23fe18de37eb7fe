// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package models

import "time"

// Aggregate status values.
const (
	SyncHealthy  = "healthy"
	SyncDegraded = "degraded"
)

// PublishedContent holds per-resource published counts.
type PublishedContent struct {
	BlogPosts int `json:"blog_posts"`
	Projects  int `json:"projects"`
	NewsItems int `json:"news_items"`
	Courses   int `json:"courses"`
}

// SyncStatus is the client-synthesized content snapshot assembled from
// public list endpoints. No single backend endpoint expresses it without
// elevated privileges.
type SyncStatus struct {
	Status           string           `json:"status"`
	PublishedContent PublishedContent `json:"published_content"`
	Timestamp        time.Time        `json:"timestamp"`
}

// Health check outcomes.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// HealthStatus reports backend reachability based solely on transport
// status. Details carries the failure cause when degraded.
type HealthStatus struct {
	Status    string    `json:"status"`
	LastCheck time.Time `json:"last_check"`
	Details   string    `json:"details,omitempty"`
}

// ContentSyncStatus is the backend-computed sync report served to
// authenticated dashboard users. Unlike SyncStatus it includes drafts.
type ContentSyncStatus struct {
	Status       string         `json:"status"`
	TotalContent int            `json:"total_content"`
	Published    map[string]int `json:"published"`
	Drafts       map[string]int `json:"drafts"`
	LastModified string         `json:"last_modified,omitempty"`
}

// AnalyticsSummary is the aggregate traffic report for dashboard users.
type AnalyticsSummary struct {
	TotalViews   int            `json:"total_views"`
	UniqueVisits int            `json:"unique_visits"`
	TopContent   []TopContent   `json:"top_content"`
	ViewsByDay   map[string]int `json:"views_by_day"`
	PeriodDays   int            `json:"period_days"`
	GeneratedAt  string         `json:"generated_at,omitempty"`
}

// TopContent is one entry in the analytics top-content ranking.
type TopContent struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Type      string `json:"type"`
	ViewCount int    `json:"view_count"`
}

// Event is a fire-and-forget telemetry record posted to the backend.
type Event struct {
	ID        string         `json:"id"`
	EventType string         `json:"event_type"`
	EventData map[string]any `json:"event_data"`
	Timestamp time.Time      `json:"timestamp"`
}
