// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import "testing"

func TestPostFilterQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter *PostFilter
		want   string
	}{
		{"nil filter", nil, "/blog/posts/"},
		{"empty filter", &PostFilter{}, "/blog/posts/"},
		{
			"full filter",
			&PostFilter{Page: 2, PageSize: 20, Status: "published", Featured: Bool(true), Search: "go", Category: "tech", Ordering: "-created_at"},
			"/blog/posts/?category=tech&featured=true&ordering=-created_at&page=2&page_size=20&search=go&status=published",
		},
		{
			"featured false is still sent",
			&PostFilter{Featured: Bool(false)},
			"/blog/posts/?featured=false",
		},
		{
			"zero page omitted",
			&PostFilter{Page: 0, Search: "x"},
			"/blog/posts/?search=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkStringEqual(t, "query", tt.filter.query("/blog/posts/"), tt.want)
		})
	}
}

func TestProjectFilterQuery(t *testing.T) {
	f := &ProjectFilter{ProjectType: "web", Featured: Bool(true), Ordering: "title"}
	checkStringEqual(t, "query", f.query("/projects/"),
		"/projects/?featured=true&ordering=title&project_type=web")
}

func TestNewsFilterQuery(t *testing.T) {
	f := &NewsFilter{Priority: "urgent", PageSize: 5}
	checkStringEqual(t, "query", f.query("/news/"),
		"/news/?page_size=5&priority=urgent")
}

func TestCourseFilterQuery(t *testing.T) {
	f := &CourseFilter{Level: "beginner", Page: 3}
	checkStringEqual(t, "query", f.query("/courses/"),
		"/courses/?level=beginner&page=3")
}

func TestPageFilterQuery(t *testing.T) {
	f := &PageFilter{Template: "landing", ShowInMenu: Bool(true)}
	checkStringEqual(t, "query", f.query("/pages/"),
		"/pages/?show_in_menu=true&template=landing")
}
