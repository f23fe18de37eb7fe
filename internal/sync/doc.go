// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

// Package sync keeps local views of CMS content fresh. The Poller
// periodically assembles an aggregate status snapshot and fans it out to
// channel subscribers; Fetcher and the content watchers build on it to
// hold typed content lists that re-fetch when the backend changes.
package sync
