// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"

	"github.com/tomtom215/reelrank/internal/dataset"
	"github.com/tomtom215/reelrank/internal/validation"
)

// Validate checks field ranges through struct tags, then the rules that
// span several fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateServer()
}

func (c *Config) validateDataset() error {
	switch c.Dataset.Source {
	case dataset.KindCSV, dataset.KindDuckDB:
		if c.Dataset.MoviesPath == "" {
			return fmt.Errorf("DATASET_MOVIES_PATH is required for the %s source", c.Dataset.Source)
		}
		if c.Dataset.RatingsPath == "" {
			return fmt.Errorf("DATASET_RATINGS_PATH is required for the %s source", c.Dataset.Source)
		}
	case dataset.KindMongo:
		if c.Dataset.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo source")
		}
		if c.Dataset.Mongo.Database == "" {
			return fmt.Errorf("MONGO_DATABASE is required for the mongo source")
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxN < r.N {
		return fmt.Errorf("RECOMMEND_MAX_N must be >= RECOMMEND_N, got %d < %d", r.MaxN, r.N)
	}
	if r.MaxK < r.K {
		return fmt.Errorf("RECOMMEND_MAX_K must be >= RECOMMEND_K, got %d < %d", r.MaxK, r.K)
	}

	seen := make(map[string]bool, len(r.Algorithms))
	for _, name := range r.Algorithms {
		if seen[name] {
			return fmt.Errorf("RECOMMEND_ALGORITHMS lists %q twice", name)
		}
		seen[name] = true
	}

	// Same settings the pipeline enforces at construction.
	return c.Pipeline().Validate()
}

func (c *Config) validateServer() error {
	s := c.Server
	if !s.RateLimitDisabled && s.RateLimitRequests > 0 && s.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	if s.CacheSize > 0 && s.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when CACHE_SIZE is set")
	}
	return nil
}
