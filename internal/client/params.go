// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"net/url"
	"strconv"
)

// queryBuilder accumulates query-string parameters. Unset fields are never
// serialized, matching the backend's filter contract.
type queryBuilder struct {
	values url.Values
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{values: url.Values{}}
}

// addString adds a string parameter when non-empty.
func (b *queryBuilder) addString(key, value string) *queryBuilder {
	if value != "" {
		b.values.Set(key, value)
	}
	return b
}

// addInt adds an integer parameter when positive.
func (b *queryBuilder) addInt(key string, value int) *queryBuilder {
	if value > 0 {
		b.values.Set(key, strconv.Itoa(value))
	}
	return b
}

// addBool adds a boolean parameter when the pointer is set.
func (b *queryBuilder) addBool(key string, value *bool) *queryBuilder {
	if value != nil {
		b.values.Set(key, strconv.FormatBool(*value))
	}
	return b
}

// encode appends the accumulated parameters to endpoint.
func (b *queryBuilder) encode(endpoint string) string {
	if len(b.values) == 0 {
		return endpoint
	}
	return endpoint + "?" + b.values.Encode()
}

// Bool returns a pointer to b, for use in filter literals.
func Bool(b bool) *bool { return &b }

// PostFilter narrows a blog post list call.
type PostFilter struct {
	Page     int
	PageSize int
	Status   string
	Featured *bool
	Search   string
	Category string
	Ordering string
}

func (f *PostFilter) query(endpoint string) string {
	if f == nil {
		return endpoint
	}
	return newQueryBuilder().
		addInt("page", f.Page).
		addInt("page_size", f.PageSize).
		addString("status", f.Status).
		addBool("featured", f.Featured).
		addString("search", f.Search).
		addString("category", f.Category).
		addString("ordering", f.Ordering).
		encode(endpoint)
}

// ProjectFilter narrows a project list call.
type ProjectFilter struct {
	Page        int
	PageSize    int
	Featured    *bool
	ProjectType string
	Ordering    string
}

func (f *ProjectFilter) query(endpoint string) string {
	if f == nil {
		return endpoint
	}
	return newQueryBuilder().
		addInt("page", f.Page).
		addInt("page_size", f.PageSize).
		addBool("featured", f.Featured).
		addString("project_type", f.ProjectType).
		addString("ordering", f.Ordering).
		encode(endpoint)
}

// NewsFilter narrows a news list call.
type NewsFilter struct {
	Page     int
	PageSize int
	Priority string
	Featured *bool
	Ordering string
}

func (f *NewsFilter) query(endpoint string) string {
	if f == nil {
		return endpoint
	}
	return newQueryBuilder().
		addInt("page", f.Page).
		addInt("page_size", f.PageSize).
		addString("priority", f.Priority).
		addBool("featured", f.Featured).
		addString("ordering", f.Ordering).
		encode(endpoint)
}

// CourseFilter narrows a course list call.
type CourseFilter struct {
	Page     int
	PageSize int
	Featured *bool
	Level    string
	Ordering string
}

func (f *CourseFilter) query(endpoint string) string {
	if f == nil {
		return endpoint
	}
	return newQueryBuilder().
		addInt("page", f.Page).
		addInt("page_size", f.PageSize).
		addBool("featured", f.Featured).
		addString("level", f.Level).
		addString("ordering", f.Ordering).
		encode(endpoint)
}

// PageFilter narrows a CMS page list call.
type PageFilter struct {
	Page       int
	PageSize   int
	Template   string
	ShowInMenu *bool
	Ordering   string
}

func (f *PageFilter) query(endpoint string) string {
	if f == nil {
		return endpoint
	}
	return newQueryBuilder().
		addInt("page", f.Page).
		addInt("page_size", f.PageSize).
		addString("template", f.Template).
		addBool("show_in_menu", f.ShowInMenu).
		addString("ordering", f.Ordering).
		encode(endpoint)
}
