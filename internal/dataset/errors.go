// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is wrapped by ColumnError.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnknownSource is returned by NewSource for an unsupported kind.
	ErrUnknownSource = errors.New("unknown dataset source")

	// ErrInvalidGenres is returned for a genre cell that cannot be parsed.
	ErrInvalidGenres = errors.New("invalid genres cell")
)

// ColumnError reports a required column absent from a table.
type ColumnError struct {
	Table  string
	Column string
	Source string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %s table %s: %q", ErrMissingColumn, e.Table, e.Source, e.Column)
}

func (e *ColumnError) Unwrap() error {
	return ErrMissingColumn
}

// RowError reports a row that could not be decoded.
type RowError struct {
	Source string
	Line   int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Source, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
