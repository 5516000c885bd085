// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// Source kinds accepted by NewSource.
const (
	KindCSV    = "csv"
	KindDuckDB = "duckdb"
	KindMongo  = "mongo"
)

// Required column names.
const (
	ColMovieID = "movieId"
	ColTitle   = "title"
	ColGenres  = "genres"
	ColUserID  = "userId"
	ColRating  = "rating"
)

// Source loads the movie and rating tables.
type Source interface {
	// Name identifies the source in logs and stats.
	Name() string

	// Load reads both tables. Rows keep the order the backend returned them.
	Load(ctx context.Context) (*Dataset, error)
}

// Dataset holds the raw tables produced by a Source.
type Dataset struct {
	Movies  []recommend.Movie
	Ratings []recommend.Rating
	Stats   LoadStats
}

// LoadStats summarises one load.
type LoadStats struct {
	Source    string    `json:"source"`
	Movies    int       `json:"movies"`
	Ratings   int       `json:"ratings"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns how long the load took.
func (s LoadStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond returns the combined load throughput.
func (s LoadStats) RowsPerSecond() float64 {
	d := s.Duration().Seconds()
	if d <= 0 {
		return 0
	}
	return float64(s.Movies+s.Ratings) / d
}

// Snapshot indexes the dataset for scoring.
func (d *Dataset) Snapshot(opts recommend.CatalogOptions) (*recommend.Snapshot, error) {
	catalog, err := recommend.NewCatalog(d.Movies, opts)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	snap, err := recommend.NewSnapshot(catalog, d.Ratings)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	return snap, nil
}

// Config selects and configures a Source.
type Config struct {
	// Source is one of "csv", "duckdb" or "mongo".
	Source string

	// MoviesPath and RatingsPath locate the files for csv and duckdb.
	MoviesPath  string
	RatingsPath string

	Mongo MongoConfig
}

// MongoConfig locates the MongoDB collections.
type MongoConfig struct {
	URI               string
	Database          string
	MoviesCollection  string
	RatingsCollection string
	Timeout           time.Duration
}

// NewSource builds the Source named by cfg.Source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSource(cfg Config, logger zerolog.Logger) (Source, error) {
	switch cfg.Source {
	case KindCSV, "":
		return NewCSVSource(cfg.MoviesPath, cfg.RatingsPath, logger), nil
	case KindDuckDB:
		return NewDuckDBSource(cfg.MoviesPath, cfg.RatingsPath, logger), nil
	case KindMongo:
		return NewMongoSource(cfg.Mongo, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}

// ratingSet rejects repeated (userId, movieId) pairs.
type ratingSet map[[2]int]struct{}

func (s ratingSet) add(r recommend.Rating) error {
	key := [2]int{r.UserID, r.MovieID}
	if _, dup := s[key]; dup {
		return fmt.Errorf("%w: user %d movie %d", recommend.ErrDuplicateRating, r.UserID, r.MovieID)
	}
	s[key] = struct{}{}
	return nil
}
