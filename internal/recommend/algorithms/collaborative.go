// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package algorithms

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// CollaborativeConfig contains defaults for user-based collaborative filtering.
type CollaborativeConfig struct {
	// K is the neighborhood size used when ScoreOptions.K is zero.
	// Default: 50.
	K int
}

// DefaultCollaborativeConfig returns the default configuration.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{K: 50}
}

// Collaborative scores movies from the ratings of the users most similar to
// the profile.
type Collaborative struct {
	baseScorer
	config CollaborativeConfig
}

// candidate is one user's ratings restricted to the profile's movies.
type candidate struct {
	userID  int
	ratings map[int]float64
}

// NewCollaborative creates a collaborative scorer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollaborative(cfg CollaborativeConfig, logger zerolog.Logger) *Collaborative {
	if cfg.K <= 0 {
		cfg.K = DefaultCollaborativeConfig().K
	}
	return &Collaborative{
		baseScorer: newBaseScorer(recommend.AlgorithmCollaborative, logger),
		config:     cfg,
	}
}

// Score implements recommend.Scorer.
func (c *Collaborative) Score(ctx context.Context, snap *recommend.Snapshot, profile recommend.Profile, opts recommend.ScoreOptions) (*recommend.Result, error) {
	result := recommend.NewResult(c.Name())
	if profile.Len() == 0 {
		return result, nil
	}

	k := opts.K
	if k <= 0 {
		k = c.config.K
	}

	candidates := overlapCandidates(snap.Ratings(), profile)
	if len(candidates) == 0 {
		return result, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].ratings) > len(candidates[j].ratings)
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	neighbors, err := c.similarities(ctx, candidates, profile, result, opts)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		result.Degenerate = len(result.Skipped) > 0
		return result, nil
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	result.Neighbors = neighbors

	if err := c.aggregate(ctx, snap, neighbors, result, opts); err != nil {
		return nil, err
	}
	if len(result.Scores) == 0 && len(result.Skipped) > 0 {
		result.Degenerate = true
	}

	c.logger.Debug().
		Int("candidates", len(candidates)).
		Int("neighbors", len(neighbors)).
		Int("scored", len(result.Scores)).
		Int("skipped", len(result.Skipped)).
		Msg("collaborative scoring complete")

	return result, nil
}

// overlapCandidates groups the ratings of profile movies by user, in order of
// each user's first appearance.
func overlapCandidates(ratings []recommend.Rating, profile recommend.Profile) []candidate {
	index := make(map[int]int)
	var candidates []candidate

	for _, r := range ratings {
		if _, ok := profile.Rating(r.MovieID); !ok {
			continue
		}
		i, ok := index[r.UserID]
		if !ok {
			i = len(candidates)
			index[r.UserID] = i
			candidates = append(candidates, candidate{
				userID:  r.UserID,
				ratings: make(map[int]float64),
			})
		}
		candidates[i].ratings[r.MovieID] = r.Value
	}

	return candidates
}

// similarities computes the cosine between the profile and each candidate
// over their shared movies, ordered by ascending movie id.
func (c *Collaborative) similarities(ctx context.Context, candidates []candidate, profile recommend.Profile, result *recommend.Result, opts recommend.ScoreOptions) ([]recommend.Neighbor, error) {
	neighbors := make([]recommend.Neighbor, 0, len(candidates))

	for _, cand := range candidates {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		ids := make([]int, 0, len(cand.ratings))
		for id := range cand.ratings {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		profileVec := make([]float64, len(ids))
		userVec := make([]float64, len(ids))
		for i, id := range ids {
			profileVec[i], _ = profile.Rating(id)
			userVec[i] = cand.ratings[id]
		}

		sim, err := CosineSimilarity(profileVec, userVec)
		if err != nil {
			derr := &recommend.DegeneracyError{
				Stage:   recommend.StageSimilarity,
				Subject: "user",
				ID:      cand.userID,
				Err:     err,
			}
			if err := c.degenerate(result, opts, derr); err != nil {
				return nil, err
			}
			continue
		}

		neighbors = append(neighbors, recommend.Neighbor{
			UserID:     cand.userID,
			Overlap:    len(ids),
			Similarity: sim,
		})
	}

	return neighbors, nil
}

// aggregate accumulates Σ(sim·rating) and Σ sim over every catalog movie the
// neighbors rated, then divides per movie in ascending id order.
func (c *Collaborative) aggregate(ctx context.Context, snap *recommend.Snapshot, neighbors []recommend.Neighbor, result *recommend.Result, opts recommend.ScoreOptions) error {
	type sums struct {
		weighted   float64
		similarity float64
	}

	catalog := snap.Catalog()
	ratings := snap.Ratings()
	acc := make(map[int]*sums)

	for _, nb := range neighbors {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		for _, idx := range snap.UserRatings(nb.UserID) {
			r := ratings[idx]
			if !catalog.Has(r.MovieID) {
				continue
			}
			s, ok := acc[r.MovieID]
			if !ok {
				s = &sums{}
				acc[r.MovieID] = s
			}
			s.weighted += nb.Similarity * r.Value
			s.similarity += nb.Similarity
		}
	}

	ids := make([]int, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		s := acc[id]
		score := 0.0
		if s.similarity != 0 {
			score = s.weighted / s.similarity
		}
		if s.similarity == 0 || !isFinite(score) {
			derr := &recommend.DegeneracyError{
				Stage:   recommend.StageAggregate,
				Subject: "movie",
				ID:      id,
			}
			if err := c.degenerate(result, opts, derr); err != nil {
				return err
			}
			continue
		}
		result.Scores[id] = score
	}

	return nil
}
