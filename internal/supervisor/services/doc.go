// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package services provides suture service wrappers for the serve command.
//
// Every service implements suture.Service: Serve blocks until its context
// is cancelled and returns an error only when the supervisor should
// restart it.
//
//   - HTTPServerService: runs an http.Server with graceful shutdown
//   - CacheJanitorService: periodically drops expired cached responses
package services
