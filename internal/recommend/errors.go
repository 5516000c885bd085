// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNumericDegeneracy marks a zero-norm or zero-sum denominator.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")

	// ErrDuplicateTitle is returned when two movies share a title and the
	// catalog was built without AllowDuplicateTitles.
	ErrDuplicateTitle = errors.New("duplicate movie title")

	// ErrDuplicateMovieID is returned when two catalog rows share a movieId.
	ErrDuplicateMovieID = errors.New("duplicate movie id")

	// ErrDuplicateRating is returned when a user rates the same movie twice.
	ErrDuplicateRating = errors.New("duplicate rating")

	// ErrEmptyCatalog is returned when the movie table has no rows.
	ErrEmptyCatalog = errors.New("empty movie catalog")

	// ErrInvalidRating is returned for NaN or infinite rating values.
	ErrInvalidRating = errors.New("invalid rating value")

	// ErrUnknownAlgorithm is returned when no scorer is registered under a name.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Degeneracy stages.
const (
	StageSimilarity = "similarity"
	StageAggregate  = "aggregate"
	StageNormalize  = "normalize"
)

// DegeneracyError describes which computation hit a degenerate denominator.
type DegeneracyError struct {
	// Stage is one of StageSimilarity, StageAggregate or StageNormalize.
	Stage string

	// Subject names what ID refers to: "user", "movie" or "profile".
	Subject string

	// ID is the user or movie id, zero for profile-wide failures.
	ID int

	// Err carries the low-level cause, if any.
	Err error
}

func (e *DegeneracyError) Error() string {
	var b strings.Builder
	b.WriteString(ErrNumericDegeneracy.Error())
	b.WriteString(" in ")
	b.WriteString(e.Stage)
	if e.Subject != "" {
		b.WriteString(" for ")
		b.WriteString(e.Subject)
		if e.ID != 0 {
			b.WriteString(" ")
			b.WriteString(strconv.Itoa(e.ID))
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(strings.TrimPrefix(e.Err.Error(), ErrNumericDegeneracy.Error()+": "))
	}
	return b.String()
}

// Is reports ErrNumericDegeneracy so callers can match without errors.As.
func (e *DegeneracyError) Is(target error) bool {
	return target == ErrNumericDegeneracy
}

func (e *DegeneracyError) Unwrap() error {
	return e.Err
}

// DuplicateTitleError lists the movie ids sharing one title.
type DuplicateTitleError struct {
	Title    string
	MovieIDs []int
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("%s %q: movie ids %v", ErrDuplicateTitle, e.Title, e.MovieIDs)
}

func (e *DuplicateTitleError) Unwrap() error {
	return ErrDuplicateTitle
}
