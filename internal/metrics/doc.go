// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed by the serve command at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation:
  - reelrank_recommend_runs_total: pipeline runs (counter)
    Labels: algorithm, outcome
  - reelrank_recommend_duration_seconds: pipeline latency (histogram)
    Labels: algorithm
  - reelrank_recommend_skipped_total: rows dropped for numeric degeneracy (counter)
    Labels: algorithm, stage
  - reelrank_profile_dropped_titles_total: unmatched profile titles (counter)

Dataset:
  - reelrank_dataset_load_duration_seconds (histogram), label source
  - reelrank_dataset_load_errors_total (counter), label source
  - reelrank_dataset_rows (gauge), label table
  - reelrank_dataset_genres (gauge)

API and cache:
  - api_requests_total, api_request_duration_seconds, api_active_requests
  - api_rate_limit_hits_total
  - cache_hits_total, cache_misses_total, cache_entries, cache_evictions_total

# Pipeline Integration

Observer implements recommend.Observer, so the recommend package records
measurements without importing Prometheus:

	pipeline.SetObserver(metrics.Observer{})
*/
package metrics
