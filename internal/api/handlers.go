// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/cache"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, response cache
//   - handlers_helpers.go: Shared helper functions
//   - handlers_health.go: Health endpoints
//   - handlers_recommend.go: Recommendation endpoints
//   - handlers_movies.go: Catalog endpoints
type Handler struct {
	pipeline  *recommend.Pipeline
	dataset   models.DatasetInfo
	version   string
	startTime time.Time
	cache     *cache.LRU[[]*recommend.Response] // nil when caching is disabled
	logger    zerolog.Logger
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Version is reported by the health endpoint.
	Version string

	// Dataset describes the loaded snapshot.
	Dataset models.DatasetInfo

	// CacheSize is the number of cached recommendation responses.
	// Zero disables the cache.
	CacheSize int

	// CacheTTL is how long a cached response stays valid.
	CacheTTL time.Duration

	// Logger overrides the component logger.
	Logger *zerolog.Logger
}

// NewHandler creates a new API handler serving the pipeline's snapshot.
//
//nolint:gocritic // hugeParam: options are read once at construction
func NewHandler(pipeline *recommend.Pipeline, opts HandlerOptions) *Handler {
	logger := logging.WithComponent("api")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	h := &Handler{
		pipeline:  pipeline,
		dataset:   opts.Dataset,
		version:   opts.Version,
		startTime: time.Now(),
		logger:    logger,
	}
	if opts.CacheSize > 0 {
		h.cache = cache.NewLRU[[]*recommend.Response](opts.CacheSize, opts.CacheTTL)
	}
	return h
}

// cacheLookup returns cached responses for key and records the hit or miss.
func (h *Handler) cacheLookup(key string) ([]*recommend.Response, bool) {
	if h.cache == nil {
		return nil, false
	}
	responses, ok := h.cache.Get(key)
	if ok {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}
	return responses, ok
}

// cacheStore saves responses under key.
func (h *Handler) cacheStore(key string, responses []*recommend.Response) {
	if h.cache == nil {
		return
	}
	if h.cache.Add(key, responses) {
		metrics.CacheEvictions.Inc()
	}
	metrics.CacheSize.Set(float64(h.cache.Len()))
}

// CleanupCache drops expired responses. It returns the number removed.
func (h *Handler) CleanupCache() int {
	if h.cache == nil {
		return 0
	}
	removed := h.cache.CleanupExpired()
	metrics.CacheSize.Set(float64(h.cache.Len()))
	return removed
}
