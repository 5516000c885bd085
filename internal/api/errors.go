// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// API error codes.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeInvalidRating    = "INVALID_RATING"
	CodeInvalidMovieID   = "INVALID_MOVIE_ID"
	CodeUnknownAlgorithm = "UNKNOWN_ALGORITHM"
	CodeMovieNotFound    = "MOVIE_NOT_FOUND"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeDegeneracy       = "NUMERIC_DEGENERACY"
	CodeRateLimited      = "RATE_LIMITED"
	CodeTimeout          = "TIMEOUT"
	CodeCancelled        = "REQUEST_CANCELLED"
	CodeRecommendation   = "RECOMMENDATION_ERROR"
)

// statusClientClosedRequest is the nginx convention for a client that went away.
const statusClientClosedRequest = 499

// pipelineError maps a pipeline failure to a status, code and message.
func pipelineError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrUnknownAlgorithm):
		return http.StatusNotFound, CodeUnknownAlgorithm, "Algorithm is not enabled"
	case errors.Is(err, recommend.ErrInvalidRating):
		return http.StatusBadRequest, CodeInvalidRating, "Ratings must be finite numbers"
	case errors.Is(err, recommend.ErrNumericDegeneracy):
		return http.StatusUnprocessableEntity, CodeDegeneracy, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout, "Recommendation timed out"
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, CodeCancelled, "Request cancelled"
	default:
		return http.StatusInternalServerError, CodeRecommendation, "Failed to generate recommendations"
	}
}
