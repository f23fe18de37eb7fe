// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package models

// Content status values used across every resource.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Author identifies the creator of a blog post or course.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Category groups posts and news items.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Tag labels a blog post.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Technology labels a project.
type Technology struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// BlogPost is a published or draft blog article.
type BlogPost struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt,omitempty"`
	Status          string   `json:"status"`
	Featured        bool     `json:"featured"`
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Author          Author   `json:"author"`
	Category        Category `json:"category"`
	Tags            []Tag    `json:"tags"`
	ReadingTime     int      `json:"reading_time,omitempty"`
	ViewCount       int      `json:"view_count"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	PublishedAt     string   `json:"published_at,omitempty"`
}

// Project is a portfolio project entry.
type Project struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Content      string       `json:"content"`
	Description  string       `json:"description,omitempty"`
	Status       string       `json:"status"`
	Featured     bool         `json:"featured"`
	ProjectType  string       `json:"project_type"`
	Technologies []Technology `json:"technologies"`
	GitHubURL    string       `json:"github_url,omitempty"`
	LiveDemoURL  string       `json:"live_demo_url,omitempty"`
	StartDate    string       `json:"start_date,omitempty"`
	EndDate      string       `json:"end_date,omitempty"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
}

// News item priority values. The backend uses "medium", not "normal".
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// NewsItem is a dated announcement.
type NewsItem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Body       string   `json:"body,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
	Status     string   `json:"status"`
	Featured   bool     `json:"featured"`
	Priority   string   `json:"priority"`
	Category   Category `json:"category"`
	ExpiryDate string   `json:"expiry_date,omitempty"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// Course difficulty levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course is a learning course listing.
type Course struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	Description     string  `json:"description"`
	Content         string  `json:"content"`
	Status          string  `json:"status"`
	Featured        bool    `json:"featured"`
	Level           string  `json:"level"`
	DurationHours   int     `json:"duration_hours"`
	Price           float64 `json:"price"`
	Instructor      Author  `json:"instructor"`
	EnrollmentCount int     `json:"enrollment_count"`
	Rating          float64 `json:"rating"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// Page is a CMS page (about, contact, and the like).
type Page struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Content         string `json:"content,omitempty"`
	Template        string `json:"template,omitempty"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	PublishedAt     string `json:"published_at,omitempty"`
}
