// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

func contentMovies() []recommend.Movie {
	return []recommend.Movie{
		{ID: 1, Title: "A", Genres: []string{"Action"}},
		{ID: 2, Title: "B", Genres: []string{"Action", "Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Drama"}},
	}
}

func TestNewContent(t *testing.T) {
	c := NewContent(zerolog.Nop())
	if c == nil {
		t.Fatal("NewContent() returned nil")
	}
	if c.Name() != recommend.AlgorithmContent {
		t.Errorf("Name() = %q, want %q", c.Name(), recommend.AlgorithmContent)
	}
}

func TestContent_Score(t *testing.T) {
	snap := newTestSnapshot(t, contentMovies(), nil)
	profile := recommend.NewProfile(map[int]float64{1: 5})

	c := NewContent(zerolog.Nop())
	result, err := c.Score(context.Background(), snap, profile, recommend.ScoreOptions{})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	wantProfile := map[string]float64{"Action": 5, "Drama": 0}
	for g, w := range wantProfile {
		if got := result.GenreProfile[g]; got != w {
			t.Errorf("GenreProfile[%q] = %v, want %v", g, got, w)
		}
	}

	wantScores := map[int]float64{1: 1, 2: 1, 3: 0}
	for id, w := range wantScores {
		if got := result.Scores[id]; !approxEqual(got, w) {
			t.Errorf("Scores[%d] = %v, want %v", id, got, w)
		}
	}

	ranked := recommend.Rank(result.Scores, 10)
	wantOrder := []int{1, 2, 3}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("len(Rank()) = %d, want %d", len(ranked), len(wantOrder))
	}
	for i, id := range wantOrder {
		if ranked[i].MovieID != id {
			t.Errorf("Rank()[%d].MovieID = %d, want %d", i, ranked[i].MovieID, id)
		}
	}
}

func TestContent_ScoresFinite(t *testing.T) {
	movies := []recommend.Movie{
		{ID: 1, Title: "A", Genres: []string{"Action", "Thriller"}},
		{ID: 2, Title: "B", Genres: []string{"Comedy"}},
		{ID: 3, Title: "C"},
		{ID: 4, Title: "D", Genres: []string{"Drama", "Comedy", "Thriller"}},
	}
	snap := newTestSnapshot(t, movies, nil)
	profile := recommend.NewProfile(map[int]float64{1: 4.5, 2: 1, 3: 5})

	c := NewContent(zerolog.Nop())
	result, err := c.Score(context.Background(), snap, profile, recommend.ScoreOptions{})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(result.Scores) != len(movies) {
		t.Errorf("len(Scores) = %d, want %d", len(result.Scores), len(movies))
	}
	for id, s := range result.Scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Errorf("Scores[%d] = %v, want finite", id, s)
		}
	}
	// Σw = 4.5·2 + 1 = 10; movie 4 carries Comedy (1) and Thriller (4.5).
	if got := result.Scores[4]; !approxEqual(got, 0.55) {
		t.Errorf("Scores[4] = %v, want 0.55", got)
	}
	if got := result.Scores[3]; got != 0 {
		t.Errorf("Scores[3] = %v, want 0 for a movie without genres", got)
	}
}

func TestContent_EmptyProfile(t *testing.T) {
	snap := newTestSnapshot(t, contentMovies(), nil)
	c := NewContent(zerolog.Nop())

	result, err := c.Score(context.Background(), snap, recommend.Profile{}, recommend.ScoreOptions{})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(result.Scores) != 0 {
		t.Errorf("Scores = %v, want empty", result.Scores)
	}
}

func TestContent_ZeroWeightSum(t *testing.T) {
	tests := []struct {
		name    string
		movies  []recommend.Movie
		profile map[int]float64
	}{
		{
			name:    "zero rating",
			movies:  contentMovies(),
			profile: map[int]float64{1: 0},
		},
		{
			name: "profile movie without genres",
			movies: []recommend.Movie{
				{ID: 1, Title: "A", Genres: []string{"Action"}},
				{ID: 2, Title: "B"},
			},
			profile: map[int]float64{2: 4},
		},
		{
			name:    "empty vocabulary",
			movies:  []recommend.Movie{{ID: 1, Title: "A"}},
			profile: map[int]float64{1: 4},
		},
	}

	c := NewContent(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := newTestSnapshot(t, tt.movies, nil)
			_, err := c.Score(context.Background(), snap, recommend.NewProfile(tt.profile), recommend.ScoreOptions{})
			if !errors.Is(err, recommend.ErrNumericDegeneracy) {
				t.Errorf("Score() error = %v, want ErrNumericDegeneracy", err)
			}
		})
	}
}

func TestContent_MatrixCache(t *testing.T) {
	snap := newTestSnapshot(t, contentMovies(), nil)
	c := NewContent(zerolog.Nop())

	first := c.genreMatrix(snap.Catalog())
	second := c.genreMatrix(snap.Catalog())
	if first != second {
		t.Error("genreMatrix() rebuilt the matrix for the same catalog")
	}

	other := newTestSnapshot(t, contentMovies(), nil)
	if c.genreMatrix(other.Catalog()) == first {
		t.Error("genreMatrix() reused the matrix for a different catalog")
	}
}

func TestGenreMatrix(t *testing.T) {
	snap := newTestSnapshot(t, contentMovies(), nil)
	m := GenreMatrix(snap.Catalog())

	rows, cols := m.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("Dims() = (%d, %d), want (3, 2)", rows, cols)
	}

	want := [][]float64{{1, 0}, {1, 1}, {0, 1}}
	for i := range want {
		for j := range want[i] {
			if got := m.At(i, j); got != want[i][j] {
				t.Errorf("At(%d, %d) = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}
