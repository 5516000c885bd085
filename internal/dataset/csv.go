// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 10000

// CSVSource reads movies.csv and ratings.csv.
type CSVSource struct {
	moviesPath  string
	ratingsPath string
	logger      zerolog.Logger
}

// NewCSVSource creates a CSV source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCSVSource(moviesPath, ratingsPath string, logger zerolog.Logger) *CSVSource {
	return &CSVSource{
		moviesPath:  moviesPath,
		ratingsPath: ratingsPath,
		logger:      logger.With().Str("component", "dataset").Str("source", KindCSV).Logger(),
	}
}

// Name implements Source.
func (s *CSVSource) Name() string {
	return KindCSV
}

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) (*Dataset, error) {
	stats := LoadStats{Source: KindCSV, StartTime: time.Now()}

	movies, err := s.loadMovies(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.loadRatings(ctx)
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

func (s *CSVSource) loadMovies(ctx context.Context) ([]recommend.Movie, error) {
	f, err := os.Open(s.moviesPath)
	if err != nil {
		return nil, fmt.Errorf("open movies: %w", err)
	}
	defer f.Close()

	return ReadMovies(ctx, f, s.moviesPath)
}

func (s *CSVSource) loadRatings(ctx context.Context) ([]recommend.Rating, error) {
	f, err := os.Open(s.ratingsPath)
	if err != nil {
		return nil, fmt.Errorf("open ratings: %w", err)
	}
	defer f.Close()

	return ReadRatings(ctx, f, s.ratingsPath)
}

// ReadMovies decodes a movies CSV with movieId, title and genres columns.
// name labels errors.
func ReadMovies(ctx context.Context, r io.Reader, name string) ([]recommend.Movie, error) {
	reader, cols, err := openTable(r, "movies", name, ColMovieID, ColTitle, ColGenres)
	if err != nil {
		return nil, err
	}

	var movies []recommend.Movie
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(name, err)
		}
		line, _ := reader.FieldPos(0)

		m, err := parseMovie(record[cols[0]], record[cols[1]], record[cols[2]])
		if err != nil {
			return nil, &RowError{Source: name, Line: line, Err: err}
		}
		movies = append(movies, m)
	}

	return movies, nil
}

// ReadRatings decodes a ratings CSV with userId, movieId and rating columns.
// A repeated (userId, movieId) pair is a *RowError.
func ReadRatings(ctx context.Context, r io.Reader, name string) ([]recommend.Rating, error) {
	reader, cols, err := openTable(r, "ratings", name, ColUserID, ColMovieID, ColRating)
	if err != nil {
		return nil, err
	}

	seen := make(ratingSet)
	var ratings []recommend.Rating
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(name, err)
		}
		line, _ := reader.FieldPos(0)

		rating, err := parseRating(record[cols[0]], record[cols[1]], record[cols[2]])
		if err == nil {
			err = seen.add(rating)
		}
		if err != nil {
			return nil, &RowError{Source: name, Line: line, Err: err}
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}

func readError(name string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &RowError{Source: name, Line: perr.Line, Err: perr.Err}
	}
	return &RowError{Source: name, Err: err}
}

// openTable reads the header row and returns the index of each required
// column, in the order requested.
func openTable(r io.Reader, table, name string, required ...string) (*csv.Reader, []int, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, &ColumnError{Table: table, Column: required[0], Source: name}
	}
	if err != nil {
		return nil, nil, &RowError{Source: name, Line: 1, Err: err}
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	cols := make([]int, len(required))
	for i, col := range required {
		idx, ok := index[col]
		if !ok {
			return nil, nil, &ColumnError{Table: table, Column: col, Source: name}
		}
		cols[i] = idx
	}

	return reader, cols, nil
}
