// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/reelrank/internal/dataset"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"reelrank.yaml",
	"reelrank.yml",
	"/etc/reelrank/config.yaml",
	"/etc/reelrank/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment when present.
// Variables that are already set win over the file.
const DotEnvFile = ".env"

// DefaultProfile is the rating profile used when none is configured.
func DefaultProfile() []recommend.ProfileItem {
	return []recommend.ProfileItem{
		{Title: "GoldenEye", Rating: 4},
		{Title: "Making a Murderer", Rating: 4.5},
		{Title: "Frozen Silence", Rating: 5},
		{Title: "Cat and Mouse", Rating: 1},
		{Title: "Sudden Death", Rating: 3},
		{Title: "Dead Presidents", Rating: 4},
		{Title: "Nick of Time", Rating: 4},
	}
}

// defaultConfig returns a Config with all defaults applied.
// These are loaded first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	pipeline := recommend.DefaultConfig()
	return &Config{
		Dataset: DatasetConfig{
			Source:      dataset.KindCSV,
			MoviesPath:  "data/movies.csv",
			RatingsPath: "data/ratings.csv",
			Mongo: MongoConfig{
				Database:          "reelrank",
				MoviesCollection:  "movies",
				RatingsCollection: "ratings",
				Timeout:           dataset.DefaultMongoTimeout,
			},
		},
		Recommend: RecommendConfig{
			K:       pipeline.K,
			N:       pipeline.N,
			MaxN:    pipeline.MaxN,
			MaxK:    pipeline.MaxK,
			Strict:  pipeline.Strict,
			Timeout: pipeline.Timeout,
			Algorithms: []string{
				string(recommend.AlgorithmCollaborative),
				string(recommend.AlgorithmContent),
			},
		},
		Profile: ProfileConfig{
			Items: DefaultProfile(),
		},
		Report: ReportConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
			CacheSize:         1000,
			CacheTTL:          5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults from defaultConfig()
//  2. YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. .env file merged into the process environment
//  4. Environment variables (highest priority)
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: .env only fills variables the environment leaves unset
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	// Layer 4: Environment variables
	// RECOMMEND_K -> recommend.k, MONGO_URI -> dataset.mongo.uri
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// findConfigFile searches for a config file in standard locations.
// An explicit CONFIG_PATH that does not exist falls through to the defaults.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are settings that arrive from the environment as
// comma-separated strings.
var sliceConfigPaths = []string{
	"recommend.algorithms",
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored so unrelated environment cannot leak in.
var envMappings = map[string]string{
	// Dataset
	"dataset_source":                 "dataset.source",
	"dataset_movies_path":            "dataset.movies_path",
	"dataset_ratings_path":           "dataset.ratings_path",
	"dataset_allow_duplicate_titles": "dataset.allow_duplicate_titles",
	"mongo_uri":                      "dataset.mongo.uri",
	"mongo_database":                 "dataset.mongo.database",
	"mongo_movies_collection":        "dataset.mongo.movies_collection",
	"mongo_ratings_collection":       "dataset.mongo.ratings_collection",
	"mongo_timeout":                  "dataset.mongo.timeout",

	// Recommendation
	"recommend_k":          "recommend.k",
	"recommend_n":          "recommend.n",
	"recommend_max_n":      "recommend.max_n",
	"recommend_max_k":      "recommend.max_k",
	"recommend_strict":     "recommend.strict",
	"recommend_timeout":    "recommend.timeout",
	"recommend_algorithms": "recommend.algorithms",

	// Report
	"report_format":   "report.format",
	"report_no_color": "report.no_color",
	"no_color":        "report.no_color",

	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",
	"cors_origins":          "server.cors_origins",
	"cache_size":            "server.cache_size",
	"cache_ttl":             "server.cache_ttl",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf paths.
// It returns "" for variables that should be skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
