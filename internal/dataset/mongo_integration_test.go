// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

//go:build integration

package dataset

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/testinfra"
)

func seedMongo(t *testing.T, ctx context.Context, uri, database string, movies, ratings []interface{}) {
	t.Helper()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo.Connect() error = %v", err)
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	db := client.Database(database)
	if len(movies) > 0 {
		if _, err := db.Collection("movies").InsertMany(ctx, movies); err != nil {
			t.Fatalf("insert movies: %v", err)
		}
	}
	if len(ratings) > 0 {
		if _, err := db.Collection("ratings").InsertMany(ctx, ratings); err != nil {
			t.Fatalf("insert ratings: %v", err)
		}
	}
}

func TestMongoSource_Load_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("NewMongoContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container)

	t.Run("loads both collections in _id order", func(t *testing.T) {
		seedMongo(t, ctx, container.URI, "happy",
			[]interface{}{
				bson.D{{Key: "_id", Value: 2}, {Key: "movieId", Value: 20}, {Key: "title", Value: "Heat (1995)"}, {Key: "genres", Value: "Action|Crime|Thriller"}},
				bson.D{{Key: "_id", Value: 1}, {Key: "movieId", Value: 10}, {Key: "title", Value: "GoldenEye (1995)"}, {Key: "genres", Value: bson.A{"Action", "Adventure"}}},
				bson.D{{Key: "_id", Value: 3}, {Key: "movieId", Value: 30}, {Key: "title", Value: "Shorts (2009)"}, {Key: "genres", Value: "(no genres listed)"}},
			},
			[]interface{}{
				bson.D{{Key: "_id", Value: 1}, {Key: "userId", Value: 1}, {Key: "movieId", Value: 10}, {Key: "rating", Value: 4.5}},
				bson.D{{Key: "_id", Value: 2}, {Key: "userId", Value: 1}, {Key: "movieId", Value: 20}, {Key: "rating", Value: 3.0}},
			},
		)

		src := NewMongoSource(MongoConfig{URI: container.URI, Database: "happy"}, zerolog.Nop())
		ds, err := src.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		wantMovies := []recommend.Movie{
			{ID: 10, Title: "GoldenEye (1995)", Genres: []string{"Action", "Adventure"}},
			{ID: 20, Title: "Heat (1995)", Genres: []string{"Action", "Crime", "Thriller"}},
			{ID: 30, Title: "Shorts (2009)"},
		}
		if !reflect.DeepEqual(ds.Movies, wantMovies) {
			t.Errorf("Movies = %+v, want %+v", ds.Movies, wantMovies)
		}
		if len(ds.Ratings) != 2 || ds.Ratings[0].Value != 4.5 {
			t.Errorf("Ratings = %+v, want 2 rows starting with 4.5", ds.Ratings)
		}
		if ds.Stats.Source != KindMongo || ds.Stats.Movies != 3 || ds.Stats.Ratings != 2 {
			t.Errorf("Stats = %+v", ds.Stats)
		}

		snap, err := ds.Snapshot(recommend.CatalogOptions{})
		if err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
		if snap.Catalog().Len() != 3 {
			t.Errorf("catalog len = %d, want 3", snap.Catalog().Len())
		}
	})

	t.Run("rejects duplicate ratings", func(t *testing.T) {
		seedMongo(t, ctx, container.URI, "dupes",
			[]interface{}{
				bson.D{{Key: "_id", Value: 1}, {Key: "movieId", Value: 10}, {Key: "title", Value: "A"}, {Key: "genres", Value: "Drama"}},
			},
			[]interface{}{
				bson.D{{Key: "_id", Value: 1}, {Key: "userId", Value: 1}, {Key: "movieId", Value: 10}, {Key: "rating", Value: 4.0}},
				bson.D{{Key: "_id", Value: 2}, {Key: "userId", Value: 1}, {Key: "movieId", Value: 10}, {Key: "rating", Value: 2.0}},
			},
		)

		src := NewMongoSource(MongoConfig{URI: container.URI, Database: "dupes"}, zerolog.Nop())
		if _, err := src.Load(ctx); !errors.Is(err, recommend.ErrDuplicateRating) {
			t.Errorf("Load() error = %v, want ErrDuplicateRating", err)
		}
	})

	t.Run("reports missing columns", func(t *testing.T) {
		seedMongo(t, ctx, container.URI, "missing",
			[]interface{}{
				bson.D{{Key: "_id", Value: 1}, {Key: "movieId", Value: 10}, {Key: "genres", Value: "Drama"}},
			},
			nil,
		)

		src := NewMongoSource(MongoConfig{URI: container.URI, Database: "missing"}, zerolog.Nop())
		_, err := src.Load(ctx)
		var cerr *ColumnError
		if !errors.As(err, &cerr) || cerr.Column != ColTitle {
			t.Errorf("Load() error = %v, want missing title column", err)
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		src := NewMongoSource(MongoConfig{
			URI:      "mongodb://127.0.0.1:1",
			Database: "none",
			Timeout:  500 * time.Millisecond,
		}, zerolog.Nop())
		if _, err := src.Load(ctx); err == nil {
			t.Error("Load() against unreachable server succeeded, want error")
		}
	})
}
