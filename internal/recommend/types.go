// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"sort"
	"time"
)

// Algorithm names a registered scorer.
type Algorithm string

const (
	// AlgorithmCollaborative is user-based collaborative filtering.
	AlgorithmCollaborative Algorithm = "collaborative"
	// AlgorithmContent is genre-profile content filtering.
	AlgorithmContent Algorithm = "content"
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	return string(a)
}

// Movie is one catalog row. It is never mutated after loading.
type Movie struct {
	// ID is the dataset movieId.
	ID int `json:"movie_id" bson:"movieId"`

	// Title is the display title, used as the profile lookup key.
	Title string `json:"title" bson:"title"`

	// Genres lists the movie's genres, without duplicates.
	Genres []string `json:"genres" bson:"genres"`
}

// Rating is one (user, movie, value) triple from the ratings table.
type Rating struct {
	UserID  int     `json:"user_id" bson:"userId"`
	MovieID int     `json:"movie_id" bson:"movieId"`
	Value   float64 `json:"rating" bson:"rating"`
}

// ProfileItem is one literal (title, rating) pair supplied by the caller.
type ProfileItem struct {
	Title  string  `json:"title" koanf:"title" validate:"required,max=500"`
	Rating float64 `json:"rating" koanf:"rating" validate:"gte=0,lte=10"`
}

// Profile maps resolved movie ids to the caller's ratings.
// The zero value is an empty profile.
type Profile struct {
	ratings map[int]float64
	ids     []int
}

// NewProfile copies ratings into a Profile.
func NewProfile(ratings map[int]float64) Profile {
	p := Profile{
		ratings: make(map[int]float64, len(ratings)),
		ids:     make([]int, 0, len(ratings)),
	}
	for id, r := range ratings {
		p.ratings[id] = r
		p.ids = append(p.ids, id)
	}
	sort.Ints(p.ids)
	return p
}

// Len returns the number of rated movies.
func (p Profile) Len() int {
	return len(p.ids)
}

// Rating returns the profile rating for a movie.
func (p Profile) Rating(movieID int) (float64, bool) {
	r, ok := p.ratings[movieID]
	return r, ok
}

// MovieIDs returns the rated movie ids in ascending order.
// The returned slice must not be modified.
func (p Profile) MovieIDs() []int {
	return p.ids
}

// Recommendation is one ranked movie.
type Recommendation struct {
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// Skip records a row left out of a score because of numeric degeneracy.
type Skip struct {
	Stage   string `json:"stage"`
	Subject string `json:"subject"`
	ID      int    `json:"id"`
	Reason  string `json:"reason"`
}

// Neighbor is a retained collaborative neighbor.
type Neighbor struct {
	UserID     int     `json:"user_id"`
	Overlap    int     `json:"overlap"`
	Similarity float64 `json:"similarity"`
}

// Result is the unranked output of one scorer run.
type Result struct {
	// Algorithm identifies the scorer.
	Algorithm Algorithm

	// Scores maps candidate movie ids to finite scores.
	Scores map[int]float64

	// Skipped lists rows dropped under the skip policy.
	Skipped []Skip

	// Degenerate is set when every candidate row was skipped.
	Degenerate bool

	// Neighbors holds the retained neighbors (collaborative only).
	Neighbors []Neighbor

	// GenreProfile holds genre weights (content only).
	GenreProfile map[string]float64
}

// NewResult returns an empty result for an algorithm.
func NewResult(alg Algorithm) *Result {
	return &Result{
		Algorithm: alg,
		Scores:    make(map[int]float64),
	}
}

// ScoreOptions carries per-run tunables into a Scorer.
type ScoreOptions struct {
	// K bounds the neighborhood size. Zero selects the scorer default.
	K int

	// Strict turns any degeneracy into a terminal error.
	Strict bool
}

// Scorer computes unranked scores for a profile over a snapshot.
// Implementations must not retain or mutate the snapshot.
type Scorer interface {
	// Name returns the algorithm identifier.
	Name() Algorithm

	// Score returns candidate scores for the profile.
	Score(ctx context.Context, snap *Snapshot, profile Profile, opts ScoreOptions) (*Result, error)
}

// Observer receives pipeline measurements. The metrics package provides
// the prometheus implementation.
type Observer interface {
	ObserveRun(alg Algorithm, outcome string, d time.Duration)
	ObserveDroppedTitles(n int)
	ObserveSkipped(alg Algorithm, stage string, n int)
}

// Run outcomes reported to an Observer.
const (
	OutcomeSuccess    = "success"
	OutcomeEmpty      = "empty"
	OutcomeDegenerate = "degenerate"
	OutcomeTimeout    = "timeout"
	OutcomeError      = "error"
)

type nopObserver struct{}

func (nopObserver) ObserveRun(Algorithm, string, time.Duration) {}
func (nopObserver) ObserveDroppedTitles(int)                    {}
func (nopObserver) ObserveSkipped(Algorithm, string, int)       {}

// Request is one recommendation request.
type Request struct {
	// Algorithm selects the scorer.
	Algorithm Algorithm `json:"algorithm"`

	// Items is the literal profile.
	Items []ProfileItem `json:"items"`

	// K overrides the neighborhood size when positive.
	K int `json:"k,omitempty"`

	// N overrides the result count when positive.
	N int `json:"n,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// ScoredMovie is a ranked recommendation with catalog details.
type ScoredMovie struct {
	MovieID int      `json:"movie_id"`
	Title   string   `json:"title"`
	Genres  []string `json:"genres"`
	Score   float64  `json:"score"`
}

// Response is the ranked output of one pipeline run.
type Response struct {
	Algorithm    Algorithm          `json:"algorithm"`
	Items        []ScoredMovie      `json:"items"`
	Profile      ProfileStats       `json:"profile"`
	Skipped      int                `json:"skipped"`
	Degenerate   bool               `json:"degenerate,omitempty"`
	GenreProfile map[string]float64 `json:"genre_profile,omitempty"`
	Metadata     ResponseMetadata   `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID string    `json:"request_id,omitempty"`
	K         int       `json:"k,omitempty"`
	N         int       `json:"n"`
	Neighbors int       `json:"neighbors,omitempty"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}
