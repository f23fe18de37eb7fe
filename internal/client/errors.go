// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a request that never produced an HTTP response.
// Its status is always 0. Never retried automatically outside the
// 401-refresh path, and never silently swallowed.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError reports a non-2xx HTTP response from the backend. Message carries
// the decoded error payload when the body was JSON, otherwise the HTTP
// status text.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
	Code       string
}

func (e *APIError) Error() string {
	if e.Detail != "" && e.Detail != e.Message {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsAPIError reports whether err carries an HTTP response status, meaning
// the backend was reachable even if it rejected the request.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err: the APIError status,
// 0 for a NetworkError, and -1 for anything else.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return 0
	}
	return -1
}
