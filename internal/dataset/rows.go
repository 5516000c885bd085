// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// parseMovie decodes the text cells of one movie row.
func parseMovie(id, title, genres string) (recommend.Movie, error) {
	movieID, err := parseID(ColMovieID, id)
	if err != nil {
		return recommend.Movie{}, err
	}
	g, err := ParseGenres(genres)
	if err != nil {
		return recommend.Movie{}, err
	}
	return recommend.Movie{ID: movieID, Title: title, Genres: g}, nil
}

// parseRating decodes the text cells of one rating row.
func parseRating(user, movie, rating string) (recommend.Rating, error) {
	userID, err := parseID(ColUserID, user)
	if err != nil {
		return recommend.Rating{}, err
	}
	movieID, err := parseID(ColMovieID, movie)
	if err != nil {
		return recommend.Rating{}, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(rating), 64)
	if err != nil {
		return recommend.Rating{}, fmt.Errorf("%s %q: %w", ColRating, rating, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return recommend.Rating{}, fmt.Errorf("%w: %q", recommend.ErrInvalidRating, rating)
	}
	return recommend.Rating{UserID: userID, MovieID: movieID, Value: value}, nil
}

// parseID accepts integers and integral floats ("12.0"), which pandas writes
// for id columns that once held missing values.
func parseID(column, s string) (int, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s %q: not an integer id", column, s)
	}
	return int(f), nil
}
