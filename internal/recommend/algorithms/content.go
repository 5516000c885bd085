// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package algorithms

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// Content scores every catalog movie against the genre profile of the
// caller's ratings.
//
// The genre matrix has one row per catalog movie, in catalog order, and one
// column per vocabulary genre. Every cell is set explicitly, so a movie
// without a genre holds 0 rather than a missing value.
type Content struct {
	baseScorer

	mu      sync.RWMutex
	catalog *recommend.Catalog
	genres  *mat.Dense
}

// NewContent creates a content scorer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContent(logger zerolog.Logger) *Content {
	return &Content{
		baseScorer: newBaseScorer(recommend.AlgorithmContent, logger),
	}
}

// Score implements recommend.Scorer.
func (c *Content) Score(ctx context.Context, snap *recommend.Snapshot, profile recommend.Profile, opts recommend.ScoreOptions) (*recommend.Result, error) {
	result := recommend.NewResult(c.Name())
	if profile.Len() == 0 {
		return result, nil
	}

	catalog := snap.Catalog()
	vocab := catalog.Genres()
	if len(vocab) == 0 {
		return nil, &recommend.DegeneracyError{Stage: recommend.StageNormalize, Subject: "profile"}
	}

	matrix := c.genreMatrix(catalog)
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	weights := GenreProfile(catalog, matrix, profile)

	result.GenreProfile = make(map[string]float64, len(vocab))
	for j, g := range vocab {
		result.GenreProfile[g] = weights.AtVec(j)
	}

	total := mat.Sum(weights)
	if total == 0 || !isFinite(total) {
		return nil, &recommend.DegeneracyError{Stage: recommend.StageNormalize, Subject: "profile"}
	}

	rows, _ := matrix.Dims()
	scores := mat.NewVecDense(rows, nil)
	scores.MulVec(matrix, weights)

	movies := catalog.Movies()
	for i := 0; i < rows; i++ {
		if i%4096 == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		s := scores.AtVec(i) / total
		if !isFinite(s) {
			derr := &recommend.DegeneracyError{
				Stage:   recommend.StageNormalize,
				Subject: "movie",
				ID:      movies[i].ID,
			}
			if err := c.degenerate(result, opts, derr); err != nil {
				return nil, err
			}
			continue
		}
		result.Scores[movies[i].ID] = s
	}

	c.logger.Debug().
		Int("genres", len(vocab)).
		Float64("weight_sum", total).
		Int("scored", len(result.Scores)).
		Msg("content scoring complete")

	return result, nil
}

// GenreProfile returns Pᵀ·r: the rating-weighted genre counts of the profile
// movies, one entry per vocabulary genre.
func GenreProfile(catalog *recommend.Catalog, matrix *mat.Dense, profile recommend.Profile) *mat.VecDense {
	_, cols := matrix.Dims()
	ids := profile.MovieIDs()
	weights := mat.NewVecDense(cols, nil)
	if len(ids) == 0 {
		return weights
	}

	rows := mat.NewDense(len(ids), cols, nil)
	ratings := mat.NewVecDense(len(ids), nil)
	for i, id := range ids {
		idx, _ := catalog.Index(id)
		rows.SetRow(i, matrix.RawRowView(idx))
		r, _ := profile.Rating(id)
		ratings.SetVec(i, r)
	}

	weights.MulVec(rows.T(), ratings)
	return weights
}

// genreMatrix returns the one-hot matrix for catalog, building it on first use.
func (c *Content) genreMatrix(catalog *recommend.Catalog) *mat.Dense {
	c.mu.RLock()
	if c.catalog == catalog && c.genres != nil {
		m := c.genres
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	m := GenreMatrix(catalog)

	c.mu.Lock()
	c.catalog = catalog
	c.genres = m
	c.mu.Unlock()

	return m
}

// GenreMatrix builds the movie × genre indicator matrix for a catalog with a
// non-empty genre vocabulary.
func GenreMatrix(catalog *recommend.Catalog) *mat.Dense {
	movies := catalog.Movies()
	m := mat.NewDense(len(movies), len(catalog.Genres()), nil)
	for i, movie := range movies {
		for _, g := range movie.Genres {
			if j, ok := catalog.GenreIndex(g); ok {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}
