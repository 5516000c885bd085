// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

func TestDuckDBSource_LoadCSV(t *testing.T) {
	dir := t.TempDir()
	src := NewDuckDBSource(
		writeFile(t, dir, "movies.csv", testMoviesCSV),
		writeFile(t, dir, "ratings.csv", testRatingsCSV),
		zerolog.Nop(),
	)

	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	csvMovies, err := NewCSVSource(src.moviesPath, src.ratingsPath, zerolog.Nop()).Load(context.Background())
	if err != nil {
		t.Fatalf("CSV Load() error = %v", err)
	}
	if !reflect.DeepEqual(ds.Movies, csvMovies.Movies) {
		t.Errorf("duckdb movies = %+v, want %+v", ds.Movies, csvMovies.Movies)
	}
	if !reflect.DeepEqual(ds.Ratings, csvMovies.Ratings) {
		t.Errorf("duckdb ratings = %+v, want %+v", ds.Ratings, csvMovies.Ratings)
	}
	if ds.Stats.Source != KindDuckDB {
		t.Errorf("Stats.Source = %q, want %q", ds.Stats.Source, KindDuckDB)
	}
}

func TestDuckDBSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		movies  string
		ratings string
		wantErr error
	}{
		{
			name:    "missing column",
			movies:  "movieId,name,genres\n1,A,Drama\n",
			ratings: testRatingsCSV,
			wantErr: ErrMissingColumn,
		},
		{
			name:    "duplicate rating",
			movies:  testMoviesCSV,
			ratings: "userId,movieId,rating\n1,1,4\n1,1,3\n",
			wantErr: recommend.ErrDuplicateRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := NewDuckDBSource(
				writeFile(t, dir, "movies.csv", tt.movies),
				writeFile(t, dir, "ratings.csv", tt.ratings),
				zerolog.Nop(),
			)
			_, err := src.Load(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableFunction(t *testing.T) {
	tests := []struct {
		path       string
		want       string
		wantHeader int
	}{
		{"/data/movies.csv", "read_csv('/data/movies.csv', header = true, all_varchar = true)", 1},
		{"/data/movies.PARQUET", "read_parquet('/data/movies.PARQUET')", 0},
		{"/data/o'brien.csv", "read_csv('/data/o''brien.csv', header = true, all_varchar = true)", 1},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, header := tableFunction(tt.path)
			if got != tt.want || header != tt.wantHeader {
				t.Errorf("tableFunction() = (%q, %d), want (%q, %d)", got, header, tt.want, tt.wantHeader)
			}
		})
	}
}

func TestTextExpr(t *testing.T) {
	if got := textExpr("genres", "VARCHAR[]"); got != `array_to_string("genres", '|')` {
		t.Errorf("textExpr(list) = %q", got)
	}
	if got := textExpr("movieId", "BIGINT"); got != `CAST("movieId" AS VARCHAR)` {
		t.Errorf("textExpr(scalar) = %q", got)
	}
}
