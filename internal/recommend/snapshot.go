// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"fmt"
	"math"
)

// Snapshot is the immutable dataset a pipeline scores against.
type Snapshot struct {
	catalog *Catalog
	ratings []Rating
	byUser  map[int][]int
}

// NewSnapshot validates ratings and indexes them by user. Ratings keep their
// load order, which fixes the first-appearance order of users.
func NewSnapshot(catalog *Catalog, ratings []Rating) (*Snapshot, error) {
	if catalog == nil {
		return nil, ErrEmptyCatalog
	}

	s := &Snapshot{
		catalog: catalog,
		ratings: make([]Rating, len(ratings)),
		byUser:  make(map[int][]int),
	}
	copy(s.ratings, ratings)

	seen := make(map[[2]int]struct{}, len(ratings))
	for i, r := range s.ratings {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return nil, fmt.Errorf("%w: user %d movie %d", ErrInvalidRating, r.UserID, r.MovieID)
		}
		key := [2]int{r.UserID, r.MovieID}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: user %d movie %d", ErrDuplicateRating, r.UserID, r.MovieID)
		}
		seen[key] = struct{}{}
		s.byUser[r.UserID] = append(s.byUser[r.UserID], i)
	}

	return s, nil
}

// Catalog returns the movie catalog.
func (s *Snapshot) Catalog() *Catalog {
	return s.catalog
}

// Ratings returns every rating in load order. The slice must not be modified.
func (s *Snapshot) Ratings() []Rating {
	return s.ratings
}

// UserRatings returns the positions in Ratings() of one user's ratings.
func (s *Snapshot) UserRatings(userID int) []int {
	return s.byUser[userID]
}

// Users returns the number of distinct users.
func (s *Snapshot) Users() int {
	return len(s.byUser)
}
