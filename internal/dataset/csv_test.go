// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

const testMoviesCSV = `,movieId,title,genres,year
0,1,GoldenEye,"['Action', 'Adventure', 'Thriller']",1995
1,2,Sudden Death,['Action'],1995
2,3,Nick of Time,"['Action', 'Thriller']",1995
3,4,Dead Presidents,"['Action', 'Crime', 'Drama']",1995
`

const testRatingsCSV = `Unnamed: 0,userId,movieId,rating
0,1,1,4.0
1,1,2,3.5
2,2,1,5.0
3,2,4,2.0
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestReadMovies(t *testing.T) {
	movies, err := ReadMovies(context.Background(), strings.NewReader(testMoviesCSV), "movies.csv")
	if err != nil {
		t.Fatalf("ReadMovies() error = %v", err)
	}

	want := []recommend.Movie{
		{ID: 1, Title: "GoldenEye", Genres: []string{"Action", "Adventure", "Thriller"}},
		{ID: 2, Title: "Sudden Death", Genres: []string{"Action"}},
		{ID: 3, Title: "Nick of Time", Genres: []string{"Action", "Thriller"}},
		{ID: 4, Title: "Dead Presidents", Genres: []string{"Action", "Crime", "Drama"}},
	}
	if !reflect.DeepEqual(movies, want) {
		t.Errorf("ReadMovies() = %+v, want %+v", movies, want)
	}
}

func TestReadMovies_ColumnOrderAndPipes(t *testing.T) {
	input := "genres,title,movieId\nComedy|Romance,Forget Paris,5\n(no genres listed),Untitled,6\n"
	movies, err := ReadMovies(context.Background(), strings.NewReader(input), "movies.csv")
	if err != nil {
		t.Fatalf("ReadMovies() error = %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("len(movies) = %d, want 2", len(movies))
	}
	if movies[0].ID != 5 || !reflect.DeepEqual(movies[0].Genres, []string{"Comedy", "Romance"}) {
		t.Errorf("movies[0] = %+v", movies[0])
	}
	if len(movies[1].Genres) != 0 {
		t.Errorf("movies[1].Genres = %v, want none", movies[1].Genres)
	}
}

func TestReadRatings(t *testing.T) {
	ratings, err := ReadRatings(context.Background(), strings.NewReader(testRatingsCSV), "ratings.csv")
	if err != nil {
		t.Fatalf("ReadRatings() error = %v", err)
	}

	want := []recommend.Rating{
		{UserID: 1, MovieID: 1, Value: 4},
		{UserID: 1, MovieID: 2, Value: 3.5},
		{UserID: 2, MovieID: 1, Value: 5},
		{UserID: 2, MovieID: 4, Value: 2},
	}
	if !reflect.DeepEqual(ratings, want) {
		t.Errorf("ReadRatings() = %+v, want %+v", ratings, want)
	}
}

func TestReadTables_Errors(t *testing.T) {
	tests := []struct {
		name     string
		movies   bool
		input    string
		wantErr  error
		wantLine int
		wantCol  string
	}{
		{
			name:    "movies missing genres",
			movies:  true,
			input:   "movieId,title\n1,A\n",
			wantErr: ErrMissingColumn,
			wantCol: ColGenres,
		},
		{
			name:    "empty movies file",
			movies:  true,
			input:   "",
			wantErr: ErrMissingColumn,
			wantCol: ColMovieID,
		},
		{
			name:    "ratings missing rating",
			input:   "userId,movieId,timestamp\n1,1,0\n",
			wantErr: ErrMissingColumn,
			wantCol: ColRating,
		},
		{
			name:     "bad movie id",
			movies:   true,
			input:    "movieId,title,genres\n1,A,Drama\nx,B,Drama\n",
			wantLine: 3,
		},
		{
			name:     "bad genres",
			movies:   true,
			input:    "movieId,title,genres\n1,A,\"['Drama'\"\n",
			wantErr:  ErrInvalidGenres,
			wantLine: 2,
		},
		{
			name:     "duplicate rating pair",
			input:    "userId,movieId,rating\n1,1,4\n1,1,2\n",
			wantErr:  recommend.ErrDuplicateRating,
			wantLine: 3,
		},
		{
			name:     "non-finite rating",
			input:    "userId,movieId,rating\n1,1,NaN\n",
			wantErr:  recommend.ErrInvalidRating,
			wantLine: 2,
		},
		{
			name:     "wrong field count",
			input:    "userId,movieId,rating\n1,1\n",
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.movies {
				_, err = ReadMovies(context.Background(), strings.NewReader(tt.input), "test.csv")
			} else {
				_, err = ReadRatings(context.Background(), strings.NewReader(tt.input), "test.csv")
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantCol != "" {
				var cerr *ColumnError
				if !errors.As(err, &cerr) {
					t.Fatalf("error type = %T, want *ColumnError", err)
				}
				if cerr.Column != tt.wantCol {
					t.Errorf("Column = %q, want %q", cerr.Column, tt.wantCol)
				}
			}
			if tt.wantLine != 0 {
				var rerr *RowError
				if !errors.As(err, &rerr) {
					t.Fatalf("error type = %T, want *RowError", err)
				}
				if rerr.Line != tt.wantLine {
					t.Errorf("Line = %d, want %d", rerr.Line, tt.wantLine)
				}
			}
		})
	}
}

func TestReadRatings_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadRatings(ctx, strings.NewReader(testRatingsCSV), "ratings.csv")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ReadRatings() error = %v, want context.Canceled", err)
	}
}

func TestCSVSource_Load(t *testing.T) {
	dir := t.TempDir()
	src := NewCSVSource(
		writeFile(t, dir, "movies.csv", testMoviesCSV),
		writeFile(t, dir, "ratings.csv", testRatingsCSV),
		zerolog.Nop(),
	)

	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Stats.Movies != 4 || ds.Stats.Ratings != 4 {
		t.Errorf("Stats = %+v, want 4 movies and 4 ratings", ds.Stats)
	}
	if ds.Stats.Source != KindCSV {
		t.Errorf("Stats.Source = %q, want %q", ds.Stats.Source, KindCSV)
	}

	snap, err := ds.Snapshot(recommend.CatalogOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if id, ok := snap.Catalog().Lookup("Nick of Time"); !ok || id != 3 {
		t.Errorf("Lookup(Nick of Time) = (%d, %v), want (3, true)", id, ok)
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), "ratings.csv", zerolog.Nop())
	if _, err := src.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		kind    string
		want    string
		wantErr bool
	}{
		{"", KindCSV, false},
		{KindCSV, KindCSV, false},
		{KindDuckDB, KindDuckDB, false},
		{KindMongo, KindMongo, false},
		{"sqlite", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			src, err := NewSource(Config{Source: tt.kind}, zerolog.Nop())
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSource) {
					t.Errorf("NewSource() error = %v, want ErrUnknownSource", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSource() error = %v", err)
			}
			if src.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.want)
			}
		})
	}
}
