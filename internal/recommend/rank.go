// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "sort"

// Rank orders scores by descending value, breaking ties by ascending movie id,
// and keeps the first n. A non-positive n yields no results.
func Rank(scores map[int]float64, n int) []Recommendation {
	if n <= 0 || len(scores) == 0 {
		return []Recommendation{}
	}

	ranked := make([]Recommendation, 0, len(scores))
	for id, s := range scores {
		ranked = append(ranked, Recommendation{MovieID: id, Score: s})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].MovieID < ranked[j].MovieID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
