// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package recommend holds the domain model and the scoring pipeline for
// single-profile movie recommendations.
//
// # Data Flow
//
//	dataset.Source -> Catalog + ratings -> Snapshot
//	[]ProfileItem  -> BuildProfile      -> Profile
//	Scorer(Snapshot, Profile)           -> Result (movieId -> score)
//	Rank(Result.Scores, N)              -> []Recommendation
//
// Two scorers live in the algorithms subpackage: user-based collaborative
// filtering and genre-profile content filtering. They never interact and are
// registered on a Pipeline by the caller, which keeps this package free of
// imports from other internal packages.
//
// # Determinism
//
// Every stage is a pure function of the snapshot and the literal profile.
// Ties are broken by ascending movie or user id, and aggregation iterates in
// sorted order, so repeated runs produce byte-identical rankings.
//
// # Numeric Degeneracy
//
// Zero denominators never become NaN or Inf in a ranking. Scorers either skip
// the offending row and record it in Result.Skipped, or, in strict mode, fail
// the run with a *DegeneracyError wrapping ErrNumericDegeneracy.
//
// # Thread Safety
//
// A Snapshot is read-only after construction and may be shared by any number
// of concurrent pipeline runs.
package recommend
