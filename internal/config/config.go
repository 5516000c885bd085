// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"time"

	"github.com/tomtom215/reelrank/internal/dataset"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Config holds all application configuration.
// Values are layered: built-in defaults, then the YAML file, then the
// environment (including a .env file in the working directory).
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	Profile   ProfileConfig   `koanf:"profile"`
	Report    ReportConfig    `koanf:"report"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig selects where the movie and rating tables come from.
//
// Environment Variables:
//   - DATASET_SOURCE: csv, duckdb or mongo (default: csv)
//   - DATASET_MOVIES_PATH: movies table for csv/duckdb (default: data/movies.csv)
//   - DATASET_RATINGS_PATH: ratings table for csv/duckdb (default: data/ratings.csv)
//   - DATASET_ALLOW_DUPLICATE_TITLES: tolerate colliding titles (default: false)
type DatasetConfig struct {
	Source               string      `koanf:"source" validate:"oneof=csv duckdb mongo"`
	MoviesPath           string      `koanf:"movies_path"`
	RatingsPath          string      `koanf:"ratings_path"`
	AllowDuplicateTitles bool        `koanf:"allow_duplicate_titles"`
	Mongo                MongoConfig `koanf:"mongo"`
}

// MongoConfig locates the movie and rating collections.
//
// Environment Variables:
//   - MONGO_URI: connection string, e.g. mongodb://localhost:27017
//   - MONGO_DATABASE: database name (default: reelrank)
//   - MONGO_MOVIES_COLLECTION (default: movies)
//   - MONGO_RATINGS_COLLECTION (default: ratings)
//   - MONGO_TIMEOUT: connect and query timeout (default: 10s)
type MongoConfig struct {
	URI               string        `koanf:"uri"`
	Database          string        `koanf:"database"`
	MoviesCollection  string        `koanf:"movies_collection"`
	RatingsCollection string        `koanf:"ratings_collection"`
	Timeout           time.Duration `koanf:"timeout" validate:"gte=0"`
}

// RecommendConfig tunes both pipelines.
//
// Environment Variables:
//   - RECOMMEND_K: neighbors kept by collaborative filtering (default: 50)
//   - RECOMMEND_N: recommendations reported per pipeline (default: 10)
//   - RECOMMEND_MAX_N, RECOMMEND_MAX_K: caps on per-request overrides
//   - RECOMMEND_STRICT: fail on numeric degeneracy instead of skipping
//   - RECOMMEND_TIMEOUT: per-run deadline (default: 10s)
//   - RECOMMEND_ALGORITHMS: comma-separated pipelines to run
//     (default: collaborative,content)
type RecommendConfig struct {
	K          int           `koanf:"k" validate:"gt=0"`
	N          int           `koanf:"n" validate:"gt=0"`
	MaxN       int           `koanf:"max_n" validate:"gt=0"`
	MaxK       int           `koanf:"max_k" validate:"gt=0"`
	Strict     bool          `koanf:"strict"`
	Timeout    time.Duration `koanf:"timeout" validate:"gte=0"`
	Algorithms []string      `koanf:"algorithms" validate:"min=1,dive,algorithm"`
}

// ProfileConfig is the rating profile used by the run command.
// It can only be set from the YAML file; the default is a small
// action and thriller leaning profile.
type ProfileConfig struct {
	Items []recommend.ProfileItem `koanf:"items" validate:"dive"`
}

// ReportConfig controls terminal output of the run command.
//
// Environment Variables:
//   - REPORT_FORMAT: text or json (default: text)
//   - REPORT_NO_COLOR / NO_COLOR: disable ANSI styling
type ReportConfig struct {
	Format  string `koanf:"format" validate:"oneof=text json"`
	NoColor bool   `koanf:"no_color"`
}

// ServerConfig holds HTTP server settings for the serve command.
//
// Environment Variables:
//   - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 8080)
//   - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
//   - HTTP_SHUTDOWN_TIMEOUT (default: 10s)
//   - RATE_LIMIT_REQUESTS (default: 100), RATE_LIMIT_WINDOW (default: 1m)
//   - DISABLE_RATE_LIMIT
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
//   - CACHE_SIZE: cached responses, 0 disables caching (default: 1000)
//   - CACHE_TTL (default: 5m)
type ServerConfig struct {
	Host              string        `koanf:"host" validate:"required"`
	Port              int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout       time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	CacheSize         int           `koanf:"cache_size" validate:"gte=0"`
	CacheTTL          time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: console)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load loads the configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// DatasetSource converts the dataset section into the loader's settings.
func (c *Config) DatasetSource() dataset.Config {
	return dataset.Config{
		Source:      c.Dataset.Source,
		MoviesPath:  c.Dataset.MoviesPath,
		RatingsPath: c.Dataset.RatingsPath,
		Mongo: dataset.MongoConfig{
			URI:               c.Dataset.Mongo.URI,
			Database:          c.Dataset.Mongo.Database,
			MoviesCollection:  c.Dataset.Mongo.MoviesCollection,
			RatingsCollection: c.Dataset.Mongo.RatingsCollection,
			Timeout:           c.Dataset.Mongo.Timeout,
		},
	}
}

// CatalogOptions returns the catalog construction options.
func (c *Config) CatalogOptions() recommend.CatalogOptions {
	return recommend.CatalogOptions{AllowDuplicateTitles: c.Dataset.AllowDuplicateTitles}
}

// Pipeline converts the recommend section into pipeline settings.
func (c *Config) Pipeline() *recommend.Config {
	return &recommend.Config{
		K:       c.Recommend.K,
		N:       c.Recommend.N,
		MaxN:    c.Recommend.MaxN,
		MaxK:    c.Recommend.MaxK,
		Strict:  c.Recommend.Strict,
		Timeout: c.Recommend.Timeout,
	}
}

// Algorithms returns the configured pipelines in configured order.
func (c *Config) Algorithms() []recommend.Algorithm {
	out := make([]recommend.Algorithm, len(c.Recommend.Algorithms))
	for i, name := range c.Recommend.Algorithms {
		out[i] = recommend.Algorithm(name)
	}
	return out
}

// LoggingSettings converts the logging section for logging.Init.
func (c *Config) LoggingSettings() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}
