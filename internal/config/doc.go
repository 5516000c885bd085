// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package config loads and validates Reelrank's configuration.

# Configuration Sources

Sources are layered with Koanf v2, later layers overriding earlier ones:

  - Built-in defaults (defaultConfig)
  - A YAML file: $CONFIG_PATH, ./reelrank.yaml or /etc/reelrank/config.yaml
  - A .env file in the working directory (never overrides the real environment)
  - Environment variables

Only the variables listed in envMappings are read; anything else in the
environment is ignored. Comma-separated values are accepted for list
settings such as RECOMMEND_ALGORITHMS and CORS_ORIGINS.

# Configuration Structure

  - DatasetConfig: csv, duckdb or mongo source and its locations
  - RecommendConfig: neighborhood size, result count, caps, strictness, timeout
  - ProfileConfig: the rating profile used by the run command (YAML only)
  - ReportConfig: text or JSON output, color
  - ServerConfig: HTTP listener, rate limiting, CORS, response cache
  - LoggingConfig: zerolog level, format, caller

# Example File

	dataset:
	  source: duckdb
	  movies_path: data/movies.parquet
	  ratings_path: data/ratings.parquet
	recommend:
	  k: 30
	  n: 5
	profile:
	  items:
	    - title: "GoldenEye"
	      rating: 4
	    - title: "Toy Story"
	      rating: 5

# Validation

Validate runs the shared go-playground validator over the struct tags and
then checks rules spanning several fields, e.g. that a mongo source has a
URI and that RECOMMEND_MAX_N is not below RECOMMEND_N.
*/
package config
