// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package algorithms

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// baseScorer holds what both scorers share.
type baseScorer struct {
	name   recommend.Algorithm
	logger zerolog.Logger
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newBaseScorer(name recommend.Algorithm, logger zerolog.Logger) baseScorer {
	return baseScorer{
		name:   name,
		logger: logger.With().Str("component", "scorer").Str("algorithm", string(name)).Logger(),
	}
}

// Name returns the algorithm identifier.
func (b *baseScorer) Name() recommend.Algorithm {
	return b.name
}

// degenerate applies the skip policy. In strict mode it returns derr;
// otherwise it records the skip on result and returns nil.
func (b *baseScorer) degenerate(result *recommend.Result, opts recommend.ScoreOptions, derr *recommend.DegeneracyError) error {
	if opts.Strict {
		return derr
	}

	result.Skipped = append(result.Skipped, recommend.Skip{
		Stage:   derr.Stage,
		Subject: derr.Subject,
		ID:      derr.ID,
		Reason:  derr.Error(),
	})
	b.logger.Debug().
		Str("stage", derr.Stage).
		Str("subject", derr.Subject).
		Int("id", derr.ID).
		Msg("skipping degenerate row")
	return nil
}

// CosineSimilarity returns a·b / (|a||b|).
//
// Empty or mismatched vectors, zero norms and constant vectors (every entry
// equal, which includes any single-element vector) fail with
// recommend.ErrNumericDegeneracy. The result is clamped to [-1, 1].
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("%w: vector lengths %d and %d", recommend.ErrNumericDegeneracy, len(a), len(b))
	}
	if isConstant(a) || isConstant(b) {
		return 0, fmt.Errorf("%w: constant vector", recommend.ErrNumericDegeneracy)
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("%w: zero-norm vector", recommend.ErrNumericDegeneracy)
	}

	sim := floats.Dot(a, b) / (normA * normB)
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("%w: non-finite similarity", recommend.ErrNumericDegeneracy)
	}

	return math.Max(-1, math.Min(1, sim)), nil
}

func isConstant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ContextCancelled checks if the context has been cancelled.
// This is a non-blocking check suitable for use in tight loops.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
