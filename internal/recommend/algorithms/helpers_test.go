// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package algorithms

import (
	"math"
	"testing"

	"github.com/tomtom215/reelrank/internal/recommend"
)

func newTestSnapshot(t *testing.T, movies []recommend.Movie, ratings []recommend.Rating) *recommend.Snapshot {
	t.Helper()

	catalog, err := recommend.NewCatalog(movies, recommend.CatalogOptions{})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	snap, err := recommend.NewSnapshot(catalog, ratings)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return snap
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
