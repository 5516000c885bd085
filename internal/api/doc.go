// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package api provides the HTTP REST API for Reelrank.

The API serves recommendations from an in-memory snapshot that is loaded
once at startup. Every response uses the models.APIResponse envelope.

Endpoints:

  - POST /api/v1/recommendations: rank movies for a literal profile
  - GET  /api/v1/recommendations/algorithms: enabled pipelines
  - GET  /api/v1/movies: paginated catalog, filterable by genre and title
  - GET  /api/v1/movies/{id}: one catalog movie
  - GET  /api/v1/genres: genre vocabulary
  - GET  /api/v1/dataset: snapshot summary
  - GET  /api/v1/health, /api/v1/health/live, /api/v1/health/ready
  - GET  /metrics: Prometheus exposition

Middleware Stack (applied in order):

 1. RequestID: X-Request-ID propagation
 2. RealIP: client address from X-Forwarded-For
 3. AccessLog: one zerolog line per request
 4. Recoverer: panic recovery
 5. CORS: go-chi/cors
 6. PrometheusMetrics: per-route request metrics
 7. RateLimit: go-chi/httprate, per client IP, on /api/v1 data routes

Error Codes:

Pipeline failures map to HTTP status codes as follows:

  - VALIDATION_ERROR, INVALID_JSON, INVALID_RATING: 400
  - UNKNOWN_ALGORITHM, MOVIE_NOT_FOUND: 404
  - NUMERIC_DEGENERACY: 422 (strict mode only)
  - RATE_LIMITED: 429
  - TIMEOUT: 504
  - RECOMMENDATION_ERROR: 500

Recommendation responses are cached in an LRU keyed by the normalized
request body. The cache is safe for concurrent use and is disabled when
the configured size is zero.

Example:

	handler := api.NewHandler(pipeline, api.HandlerOptions{Version: version})
	router := api.NewRouter(handler, api.NewChiMiddleware(nil), logger)
	http.ListenAndServe(":8080", router.SetupChi())
*/
package api
