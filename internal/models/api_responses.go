// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package models

import (
	"time"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// APIResponse is the envelope for every JSON response of the HTTP API.
//
// Status is "success" with Data set, or "error" with Error set.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"algorithm": "content", "items": [...]},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 4}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "UNKNOWN_ALGORITHM", "message": "..."},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine-readable code with a human-readable message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendRequest is the body of POST /api/v1/recommendations.
// Algorithm may be omitted to run every configured pipeline.
type RecommendRequest struct {
	Algorithm string                  `json:"algorithm,omitempty" validate:"omitempty,algorithm"`
	Items     []recommend.ProfileItem `json:"items" validate:"max=1000,dive"`
	K         int                     `json:"k,omitempty" validate:"gte=0"`
	N         int                     `json:"n,omitempty" validate:"gte=0"`
}

// RecommendAllResponse holds one response per pipeline, in pipeline order.
type RecommendAllResponse struct {
	Results []*recommend.Response `json:"results"`
}

// PaginationInfo describes an offset page.
type PaginationInfo struct {
	Limit  int  `json:"limit"`
	Offset int  `json:"offset"`
	Total  int  `json:"total"`
	More   bool `json:"has_more"`
}

// MoviesResponse is a page of catalog movies.
type MoviesResponse struct {
	Movies     []recommend.Movie `json:"movies"`
	Pagination PaginationInfo    `json:"pagination"`
}

// GenresResponse lists the genre vocabulary.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// DatasetInfo summarizes the loaded snapshot.
type DatasetInfo struct {
	Source          string    `json:"source"`
	Movies          int       `json:"movies"`
	Ratings         int       `json:"ratings"`
	Users           int       `json:"users"`
	Genres          int       `json:"genres"`
	AmbiguousTitles []string  `json:"ambiguous_titles,omitempty"`
	LoadedAt        time.Time `json:"loaded_at"`
	LoadDurationMS  int64     `json:"load_duration_ms"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status     string       `json:"status"`
	Version    string       `json:"version"`
	Uptime     float64      `json:"uptime_seconds"`
	Algorithms []string     `json:"algorithms"`
	Dataset    *DatasetInfo `json:"dataset,omitempty"`
}
