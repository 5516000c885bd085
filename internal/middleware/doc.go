// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package middleware provides HTTP middleware for the Reelrank API.

All middleware uses the func(http.Handler) http.Handler shape so it can be
mounted with chi's r.Use:

  - RequestID: accepts or generates X-Request-ID and stores it in the logging context
  - AccessLog: one zerolog line per request, with a request-scoped logger in the context
  - PrometheusMetrics: request count, latency and in-flight gauge by chi route pattern

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

RequestID must run before AccessLog so log lines carry the ID.
*/
package middleware
