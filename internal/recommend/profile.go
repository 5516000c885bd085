// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"fmt"
	"math"
)

// ProfileStats reports how literal profile items resolved against the catalog.
type ProfileStats struct {
	// Requested is the number of input items.
	Requested int `json:"requested"`

	// Resolved is the number of distinct movies in the built profile.
	Resolved int `json:"resolved"`

	// Dropped counts items whose title matched no catalog movie.
	Dropped int `json:"dropped"`

	// Duplicates counts items that repeated an already resolved movie.
	Duplicates int `json:"duplicates,omitempty"`

	// DroppedTitles lists the unmatched titles in input order.
	DroppedTitles []string `json:"dropped_titles,omitempty"`
}

// BuildProfile resolves titles to movie ids by exact, case-sensitive match.
// Unmatched titles are dropped and counted. When a movie appears twice the
// later rating wins.
func BuildProfile(catalog *Catalog, items []ProfileItem) (Profile, ProfileStats, error) {
	stats := ProfileStats{Requested: len(items)}
	ratings := make(map[int]float64, len(items))

	for _, item := range items {
		if math.IsNaN(item.Rating) || math.IsInf(item.Rating, 0) {
			return Profile{}, stats, fmt.Errorf("%w: %q", ErrInvalidRating, item.Title)
		}

		id, ok := catalog.Lookup(item.Title)
		if !ok {
			stats.Dropped++
			stats.DroppedTitles = append(stats.DroppedTitles, item.Title)
			continue
		}

		if _, seen := ratings[id]; seen {
			stats.Duplicates++
		}
		ratings[id] = item.Rating
	}

	stats.Resolved = len(ratings)
	return NewProfile(ratings), stats, nil
}
