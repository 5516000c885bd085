// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/reelrank/internal/recommend"
)

var (
	// Recommendation Metrics
	RecommendRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelrank_recommend_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"algorithm", "outcome"}, // outcome: success, empty, degenerate, timeout, error
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelrank_recommend_duration_seconds",
			Help:    "Duration of pipeline runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"algorithm"},
	)

	RecommendSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelrank_recommend_skipped_total",
			Help: "Rows skipped because of numeric degeneracy",
		},
		[]string{"algorithm", "stage"}, // stage: similarity, aggregate, normalize
	)

	ProfileDroppedTitles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelrank_profile_dropped_titles_total",
			Help: "Profile titles that did not match the catalog",
		},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelrank_dataset_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"source"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelrank_dataset_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
		[]string{"source"},
	)

	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelrank_dataset_rows",
			Help: "Rows in the loaded dataset",
		},
		[]string{"table"}, // movies, ratings
	)

	DatasetGenres = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelrank_dataset_genres",
			Help: "Size of the genre vocabulary",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached responses",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDatasetLoad records one dataset load. Row gauges are only updated
// on success so a failed reload keeps the previous values.
func RecordDatasetLoad(source string, movies, ratings int, duration time.Duration, err error) {
	DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(source).Inc()
		return
	}
	DatasetRows.WithLabelValues("movies").Set(float64(movies))
	DatasetRows.WithLabelValues("ratings").Set(float64(ratings))
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// Observer reports pipeline measurements to the package metrics.
// The zero value is ready to use.
type Observer struct{}

var _ recommend.Observer = Observer{}

// ObserveRun records the outcome and latency of one pipeline run.
func (Observer) ObserveRun(alg recommend.Algorithm, outcome string, d time.Duration) {
	RecommendRuns.WithLabelValues(alg.String(), outcome).Inc()
	RecommendDuration.WithLabelValues(alg.String()).Observe(d.Seconds())
}

// ObserveDroppedTitles counts profile titles that did not resolve.
func (Observer) ObserveDroppedTitles(n int) {
	if n > 0 {
		ProfileDroppedTitles.Add(float64(n))
	}
}

// ObserveSkipped counts rows skipped at a scoring stage.
func (Observer) ObserveSkipped(alg recommend.Algorithm, stage string, n int) {
	if n > 0 {
		RecommendSkipped.WithLabelValues(alg.String(), stage).Add(float64(n))
	}
}
