// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the configuration loader and the
// HTTP handlers so struct metadata is parsed once per type. Field names in
// error messages come from json tags, so a request body field rating reports
// as "rating" rather than "Rating".
//
// Custom tags:
//
//   - finite: rejects NaN and ±Inf floats
//   - algorithm: accepts "collaborative" or "content"
//
// Example:
//
//	type recommendBody struct {
//	    Algorithm string `json:"algorithm" validate:"required,algorithm"`
//	    N         int    `json:"n" validate:"gte=0,lte=100"`
//	}
//
//	if verr := validation.ValidateStruct(&body); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
