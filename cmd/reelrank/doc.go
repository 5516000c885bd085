// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package main is the entry point for the reelrank command.
//
// Reelrank loads a MovieLens-style catalog and ratings table and produces
// two top-N recommendation lists for a rating profile: one from user-based
// collaborative filtering and one from genre-weighted content scoring.
//
// # Commands
//
//	reelrank run      # score the configured profile and print a report (default)
//	reelrank serve    # expose the pipelines over HTTP
//	reelrank version  # print the build version
//
// # Startup Order
//
//  1. Configuration: defaults, YAML file, .env file, environment (Koanf v2)
//  2. Logging: zerolog, console or JSON
//  3. Dataset: CSV, DuckDB or MongoDB source, indexed into a snapshot
//  4. Pipeline: only the scorers listed in RECOMMEND_ALGORITHMS are registered
//  5. run: score the profile once and write the report to stdout
//  6. serve: HTTP server and cache janitor under a Suture supervisor tree
//
// # Configuration
//
// Common settings (see internal/config for the full list):
//   - DATASET_SOURCE: csv, duckdb or mongo
//   - DATASET_MOVIES_PATH, DATASET_RATINGS_PATH
//   - MONGO_URI, MONGO_DATABASE
//   - RECOMMEND_K, RECOMMEND_N, RECOMMEND_STRICT, RECOMMEND_ALGORITHMS
//   - REPORT_FORMAT: text or json
//   - HTTP_HOST, HTTP_PORT, CACHE_SIZE, DISABLE_RATE_LIMIT
//   - LOG_LEVEL, LOG_FORMAT
//
// The rating profile for the run command comes from the YAML file:
//
//	profile:
//	  items:
//	    - title: "GoldenEye"
//	      rating: 4
//	    - title: "Sudden Death"
//	      rating: 3
//
// # Example Usage
//
//	DATASET_MOVIES_PATH=ml/movies.csv DATASET_RATINGS_PATH=ml/ratings.csv reelrank
//
//	REPORT_FORMAT=json RECOMMEND_ALGORITHMS=content reelrank run
//
//	DATASET_SOURCE=mongo MONGO_URI=mongodb://localhost:27017 reelrank serve
//
// # Signal Handling
//
// Both commands stop on SIGINT and SIGTERM. The run command abandons
// scoring through context cancellation; the serve command drains in-flight
// requests within HTTP_SHUTDOWN_TIMEOUT.
package main
