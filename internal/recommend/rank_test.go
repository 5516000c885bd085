// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"reflect"
	"testing"
)

func TestRank(t *testing.T) {
	scores := map[int]float64{
		5: 0.5,
		3: 0.9,
		8: 0.9,
		1: 0.1,
		2: 0.5,
	}

	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"ties break by ascending id", 10, []int{3, 8, 2, 5, 1}},
		{"truncates to n", 3, []int{3, 8, 2}},
		{"n equal to length", 5, []int{3, 8, 2, 5, 1}},
		{"zero n", 0, []int{}},
		{"negative n", -1, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(scores, tt.n)
			ids := make([]int, 0, len(got))
			for i, r := range got {
				ids = append(ids, r.MovieID)
				if i > 0 && got[i-1].Score < r.Score {
					t.Errorf("Rank()[%d].Score = %v > previous %v", i, r.Score, got[i-1].Score)
				}
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Rank() ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestRank_Empty(t *testing.T) {
	if got := Rank(nil, 10); len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}
