// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// DefaultMongoTimeout bounds connecting and pinging the server.
const DefaultMongoTimeout = 10 * time.Second

// MongoSource reads the movies and ratings collections.
//
// Documents are read in _id order:
//
//	movies:  {movieId: int, title: string, genres: [string] | string}
//	ratings: {userId: int, movieId: int, rating: number}
type MongoSource struct {
	cfg    MongoConfig
	logger zerolog.Logger
}

type movieDocument struct {
	MovieID *int          `bson:"movieId"`
	Title   *string       `bson:"title"`
	Genres  bson.RawValue `bson:"genres"`
}

type ratingDocument struct {
	UserID  *int     `bson:"userId"`
	MovieID *int     `bson:"movieId"`
	Rating  *float64 `bson:"rating"`
}

// NewMongoSource creates a MongoDB source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMongoSource(cfg MongoConfig, logger zerolog.Logger) *MongoSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultMongoTimeout
	}
	if cfg.MoviesCollection == "" {
		cfg.MoviesCollection = "movies"
	}
	if cfg.RatingsCollection == "" {
		cfg.RatingsCollection = "ratings"
	}
	return &MongoSource{
		cfg:    cfg,
		logger: logger.With().Str("component", "dataset").Str("source", KindMongo).Logger(),
	}
}

// Name implements Source.
func (s *MongoSource) Name() string {
	return KindMongo
}

// Load implements Source.
func (s *MongoSource) Load(ctx context.Context) (*Dataset, error) {
	stats := LoadStats{Source: KindMongo, StartTime: time.Now()}

	client, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			s.logger.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	db := client.Database(s.cfg.Database)

	movies, err := s.loadMovies(ctx, db.Collection(s.cfg.MoviesCollection))
	if err != nil {
		return nil, err
	}
	ratings, err := s.loadRatings(ctx, db.Collection(s.cfg.RatingsCollection))
	if err != nil {
		return nil, err
	}

	stats.Movies = len(movies)
	stats.Ratings = len(ratings)
	stats.EndTime = time.Now()

	s.logger.Info().
		Str("database", s.cfg.Database).
		Int("movies", stats.Movies).
		Int("ratings", stats.Ratings).
		Dur("duration", stats.Duration()).
		Msg("dataset loaded")

	return &Dataset{Movies: movies, Ratings: ratings, Stats: stats}, nil
}

func (s *MongoSource) connect(ctx context.Context) (*mongo.Client, error) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (s *MongoSource) loadMovies(ctx context.Context, coll *mongo.Collection) ([]recommend.Movie, error) {
	name := s.cfg.Database + "." + coll.Name()
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	var movies []recommend.Movie
	for n := 1; cursor.Next(ctx); n++ {
		var doc movieDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, &RowError{Source: name, Line: n, Err: err}
		}
		m, err := doc.toMovie(name)
		if err != nil {
			return nil, rowError(name, n, err)
		}
		movies = append(movies, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return movies, nil
}

func (s *MongoSource) loadRatings(ctx context.Context, coll *mongo.Collection) ([]recommend.Rating, error) {
	name := s.cfg.Database + "." + coll.Name()
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	seen := make(ratingSet)
	var ratings []recommend.Rating
	for n := 1; cursor.Next(ctx); n++ {
		var doc ratingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, &RowError{Source: name, Line: n, Err: err}
		}
		r, err := doc.toRating(name)
		if err == nil {
			err = seen.add(r)
		}
		if err != nil {
			return nil, rowError(name, n, err)
		}
		ratings = append(ratings, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return ratings, nil
}

// rowError passes column errors through and wraps anything else with the
// document position.
func rowError(source string, n int, err error) error {
	var cerr *ColumnError
	if errors.As(err, &cerr) {
		return err
	}
	return &RowError{Source: source, Line: n, Err: err}
}

func (d *movieDocument) toMovie(source string) (recommend.Movie, error) {
	switch {
	case d.MovieID == nil:
		return recommend.Movie{}, &ColumnError{Table: "movies", Column: ColMovieID, Source: source}
	case d.Title == nil:
		return recommend.Movie{}, &ColumnError{Table: "movies", Column: ColTitle, Source: source}
	case d.Genres.Type == 0:
		return recommend.Movie{}, &ColumnError{Table: "movies", Column: ColGenres, Source: source}
	}

	genres, err := decodeGenres(d.Genres)
	if err != nil {
		return recommend.Movie{}, err
	}

	return recommend.Movie{ID: *d.MovieID, Title: *d.Title, Genres: genres}, nil
}

func (d *ratingDocument) toRating(source string) (recommend.Rating, error) {
	switch {
	case d.UserID == nil:
		return recommend.Rating{}, &ColumnError{Table: "ratings", Column: ColUserID, Source: source}
	case d.MovieID == nil:
		return recommend.Rating{}, &ColumnError{Table: "ratings", Column: ColMovieID, Source: source}
	case d.Rating == nil:
		return recommend.Rating{}, &ColumnError{Table: "ratings", Column: ColRating, Source: source}
	}
	if math.IsNaN(*d.Rating) || math.IsInf(*d.Rating, 0) {
		return recommend.Rating{}, fmt.Errorf("%w: user %d movie %d", recommend.ErrInvalidRating, *d.UserID, *d.MovieID)
	}
	return recommend.Rating{UserID: *d.UserID, MovieID: *d.MovieID, Value: *d.Rating}, nil
}

// decodeGenres accepts a string array or any encoding ParseGenres reads.
func decodeGenres(v bson.RawValue) ([]string, error) {
	switch v.Type {
	case bsontype.Array:
		var genres []string
		if err := v.Unmarshal(&genres); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGenres, err)
		}
		return dedupe(genres), nil
	case bsontype.String:
		return ParseGenres(v.StringValue())
	case bsontype.Null:
		return []string{}, nil
	default:
		return nil, fmt.Errorf("%w: bson type %s", ErrInvalidGenres, v.Type)
	}
}
