// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package algorithms implements the two recommendation scorers.
//
// Both implement recommend.Scorer and are registered on a recommend.Pipeline
// by the caller. They share no state and never blend their outputs.
//
// # Collaborative
//
// User-based collaborative filtering over the users who rated at least one
// profile movie:
//
//  1. restrict ratings to the profile's movies
//  2. group them by user in order of first appearance
//  3. keep the K users with the largest overlap (stable)
//  4. cosine similarity over the shared movies, sorted by id
//  5. keep the K most similar users (stable)
//  6. score every movie they rated as Σ(sim·rating) / Σ sim
//
// Movies already in the profile are scored like any other.
//
// # Content
//
// Genre profile filtering on a dense one-hot movie × genre matrix:
//
//	w     = Pᵀ · r        (P: profile rows, r: profile ratings)
//	score = M · w / Σw    (M: every catalog movie)
//
// # Degeneracy
//
// A zero norm, a constant vector, or a zero weight sum never produces NaN or
// Inf. The collaborative scorer skips the offending neighbor or movie unless
// ScoreOptions.Strict is set. The content scorer fails the run when Σw is
// zero, since no movie can be scored.
//
// # Thread Safety
//
// Scorers are safe for concurrent use. The content scorer caches the genre
// matrix per catalog behind a read-write lock.
package algorithms
