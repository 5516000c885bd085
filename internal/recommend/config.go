// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"fmt"
	"time"
)

// Config contains the pipeline tunables.
type Config struct {
	// K is the default neighborhood size for collaborative filtering.
	// Default: 50.
	K int `json:"k"`

	// N is the default number of recommendations returned.
	// Default: 10.
	N int `json:"n"`

	// MaxN caps per-request N overrides.
	// Default: 100.
	MaxN int `json:"max_n"`

	// MaxK caps per-request K overrides.
	// Default: 1000.
	MaxK int `json:"max_k"`

	// Strict turns any numeric degeneracy into a failed run instead of
	// skipping the offending row.
	Strict bool `json:"strict"`

	// Timeout bounds one scorer run. Zero disables the deadline.
	// Default: 10s.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		K:       50,
		N:       10,
		MaxN:    100,
		MaxK:    1000,
		Timeout: 10 * time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if c.N <= 0 {
		return fmt.Errorf("n must be positive, got %d", c.N)
	}
	if c.MaxN < c.N {
		return fmt.Errorf("max_n must be >= n, got %d < %d", c.MaxN, c.N)
	}
	if c.MaxK < c.K {
		return fmt.Errorf("max_k must be >= k, got %d < %d", c.MaxK, c.K)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.Timeout)
	}
	return nil
}
