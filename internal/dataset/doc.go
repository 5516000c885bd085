// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package dataset loads the movie and rating tables that back a recommendation
snapshot.

Three sources are supported:

  - csv: two CSV files read with encoding/csv
  - duckdb: the same files (or Parquet) queried through an in-memory DuckDB
  - mongo: two MongoDB collections

Every source locates columns by name. Extra columns such as a pandas index
("Unnamed: 0"), "year" or "timestamp" are ignored. A missing required column
is a *ColumnError and a malformed row is a *RowError; both are data-shape
errors that stop the pipeline.

# Genre Cells

Genre cells are accepted in three encodings:

	['Action', "Children's"]   Python list literal (pandas output)
	["Action", "Drama"]        JSON array
	Action|Drama               MovieLens pipe list

"(no genres listed)" and empty lists yield no genres.

# Usage

	src, err := dataset.NewSource(cfg, logger)
	ds, err := src.Load(ctx)
	snap, err := ds.Snapshot(recommend.CatalogOptions{})
*/
package dataset
