// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

// Package models defines the data transfer objects exchanged with the
// Portfolio CMS backend.
//
// All content records are backend-owned; the client holds transient read-only
// copies. JSON tags match the backend's field names exactly (Django REST
// framework snake_case).
package models
