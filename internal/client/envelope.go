// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Pagination describes the list window of a paginated response.
type Pagination struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	PageSize int     `json:"page_size"`
}

// Envelope is the normalized response returned by every client call,
// regardless of whether the backend wrapped the payload in a pagination
// container or returned it directly. Data always holds the semantically
// relevant payload; Status always reflects the transport-level HTTP code.
type Envelope[T any] struct {
	Data       T
	Count      *int
	Next       *string
	Previous   *string
	Status     int
	Pagination *Pagination
}

// ItemCount returns the best available element count for a list envelope:
// the backend's total count when present, otherwise the page length.
func (e *Envelope[T]) ItemCount() int {
	if e.Count != nil {
		return *e.Count
	}
	if e.Pagination != nil {
		return e.Pagination.PageSize
	}
	return 0
}

// paginatedBody mirrors the Django REST framework list wrapper. Results stays
// nil when the body carries no "results" key, which is what distinguishes the
// two response variants.
type paginatedBody struct {
	Results  json.RawMessage `json:"results"`
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
}

// decodeEnvelope normalizes a raw response body into an Envelope. The decode
// is a tagged-variant parse: the paginated wrapper is attempted first, and
// anything without a results field is treated as a direct payload. Empty or
// non-JSON bodies produce a zero Data value. The normalization is loss-free:
// every field the backend sent is reachable via Data or the pagination fields.
func decodeEnvelope[T any](status int, isJSON bool, body []byte) (*Envelope[T], error) {
	env := &Envelope[T]{Status: status}

	trimmed := bytes.TrimSpace(body)
	if !isJSON || len(trimmed) == 0 {
		return env, nil
	}

	var page paginatedBody
	if err := json.Unmarshal(trimmed, &page); err == nil && page.Results != nil {
		if err := json.Unmarshal(page.Results, &env.Data); err != nil {
			return nil, fmt.Errorf("failed to decode results: %w", err)
		}

		// Page size is the element count of this page, not the total.
		var items []json.RawMessage
		_ = json.Unmarshal(page.Results, &items)

		count := page.Count
		env.Count = &count
		env.Next = page.Next
		env.Previous = page.Previous
		env.Pagination = &Pagination{
			Count:    page.Count,
			Next:     page.Next,
			Previous: page.Previous,
			PageSize: len(items),
		}
		return env, nil
	}

	if err := json.Unmarshal(trimmed, &env.Data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return env, nil
}
