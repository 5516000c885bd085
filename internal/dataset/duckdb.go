// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	// DuckDB driver - reads CSV and Parquet files in-process
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// DuckDBSource queries the movie and rating files through an in-memory
// DuckDB database. Files ending in .parquet are read with read_parquet;
// anything else is read as CSV with every column typed as text.
type DuckDBSource struct {
	moviesPath  string
	ratingsPath string
	logger      zerolog.Logger
}

// NewDuckDBSource creates a DuckDB source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDuckDBSource(moviesPath, ratingsPath string, logger zerolog.Logger) *DuckDBSource {
	return &DuckDBSource{
		moviesPath:  moviesPath,
		ratingsPath: ratingsPath,
		logger:      logger.With().Str("component", "dataset").Str("source", KindDuckDB).Logger(),
	}
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	return KindDuckDB
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) (*Dataset, error) {
	stats := LoadStats{Source: KindDuckDB, StartTime: time.Now()}

	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Msg("close duckdb")
		}
	}()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	var movies []recommend.Movie
	err = s.query(ctx, conn, "movies", s.moviesPath, []string{ColMovieID, ColTitle, ColGenres}, func(line int, cells []string) error {
		m, err := parseMovie(cells[0], cells[1], cells[2])
		if err != nil {
			return err
		}
		movies = append(movies, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	seen := make(ratingSet)
	var ratings []recommend.Rating
	err = s.query(ctx, conn, "ratings", s.ratingsPath, []string{ColUserID, ColMovieID, ColRating}, func(line int, cells []string) error {
		r, err := parseRating(cells[0], cells[1], cells[2])
		if err != nil {
			return err
		}
		if err := seen.add(r); err != nil {
			return err
		}
		ratings = append(ratings, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats.Movies = len(movies)
	stats.Ratings = len(ratings)
	stats.EndTime = time.Now()

	s.logger.Info().
		Int("movies", stats.Movies).
		Int("ratings", stats.Ratings).
		Dur("duration", stats.Duration()).
		Msg("dataset loaded")

	return &Dataset{Movies: movies, Ratings: ratings, Stats: stats}, nil
}

// query selects the required columns as text and calls fn for each row.
func (s *DuckDBSource) query(ctx context.Context, conn *sql.DB, table, path string, required []string, fn func(line int, cells []string) error) error {
	relation, headerLines := tableFunction(path)

	columns, err := describe(ctx, conn, relation)
	if err != nil {
		return fmt.Errorf("describe %s: %w", path, err)
	}

	exprs := make([]string, len(required))
	for i, col := range required {
		typ, ok := columns[col]
		if !ok {
			return &ColumnError{Table: table, Column: col, Source: path}
		}
		exprs[i] = textExpr(col, typ)
	}

	//nolint:gosec // relation and column names are quoted, not user SQL
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), relation)
	rows, err := conn.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("query %s: %w", path, err)
	}
	defer rows.Close()

	cells := make([]string, len(required))
	raw := make([]sql.NullString, len(required))
	dest := make([]any, len(required))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for n := 0; rows.Next(); n++ {
		line := n + 1 + headerLines
		if err := rows.Scan(dest...); err != nil {
			return &RowError{Source: path, Line: line, Err: err}
		}
		for i, v := range raw {
			cells[i] = v.String
		}
		if err := fn(line, cells); err != nil {
			return &RowError{Source: path, Line: line, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// tableFunction returns the DuckDB table function reading path and the number
// of header lines preceding the first row.
func tableFunction(path string) (string, int) {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return "read_parquet(" + quoted + ")", 0
	}
	return "read_csv(" + quoted + ", header = true, all_varchar = true)", 1
}

// describe returns the column names and DuckDB type names of a relation.
func describe(ctx context.Context, conn *sql.DB, relation string) (map[string]string, error) {
	//nolint:gosec // relation is built by tableFunction
	rows, err := conn.QueryContext(ctx, "SELECT * FROM "+relation+" LIMIT 0")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	columns := make(map[string]string, len(types))
	for _, ct := range types {
		columns[ct.Name()] = ct.DatabaseTypeName()
	}
	return columns, rows.Err()
}

// textExpr casts a column to text. List columns are joined with '|' so
// ParseGenres reads them as a pipe list.
func textExpr(col, typ string) string {
	ident := `"` + strings.ReplaceAll(col, `"`, `""`) + `"`
	if strings.HasSuffix(typ, "[]") {
		return "array_to_string(" + ident + ", '|')"
	}
	return "CAST(" + ident + " AS VARCHAR)"
}
