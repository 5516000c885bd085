// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelrank/internal/cache"
	"github.com/tomtom215/reelrank/internal/middleware"
	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// recommendCacheKey is the normalized request that identifies a cached
// result. Item order is kept because later duplicates win.
type recommendCacheKey struct {
	Algorithm string                  `json:"a"`
	Items     []recommend.ProfileItem `json:"i"`
	K         int                     `json:"k"`
	N         int                     `json:"n"`
}

// Recommend handles POST /api/v1/recommendations.
//
// With an algorithm the data is a single recommend.Response. Without one
// every enabled pipeline runs concurrently and the data is a
// models.RecommendAllResponse in pipeline order.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	var body models.RecommendRequest
	if err := decodeJSONBody(w, r, &body); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON request body", err)
		return
	}
	if apiErr := validateRequest(&body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())

	key := cache.GenerateKey("recommend", recommendCacheKey{
		Algorithm: body.Algorithm,
		Items:     body.Items,
		K:         body.K,
		N:         body.N,
	})

	responses, cached := h.cacheLookup(key)
	if !cached {
		var err error
		responses, err = h.runPipelines(r, body, requestID)
		if err != nil {
			status, code, message := pipelineError(err)
			respondError(w, status, code, message, err)
			return
		}
		h.cacheStore(key, responses)
	}

	var data interface{}
	if body.Algorithm != "" {
		data = withRequestID(responses[0], requestID)
	} else {
		results := make([]*recommend.Response, len(responses))
		for i, resp := range responses {
			results[i] = withRequestID(resp, requestID)
		}
		data = models.RecommendAllResponse{Results: results}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			RequestID:   requestID,
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	})
}

//nolint:gocritic // hugeParam: body is read-only
func (h *Handler) runPipelines(r *http.Request, body models.RecommendRequest, requestID string) ([]*recommend.Response, error) {
	req := recommend.Request{
		Algorithm: recommend.Algorithm(body.Algorithm),
		Items:     body.Items,
		K:         body.K,
		N:         body.N,
		RequestID: requestID,
	}

	if body.Algorithm != "" {
		resp, err := h.pipeline.Recommend(r.Context(), req)
		if err != nil {
			return nil, err
		}
		return []*recommend.Response{resp}, nil
	}

	all, err := h.pipeline.RecommendAll(r.Context(), req)
	if err != nil {
		return nil, err
	}
	algorithms := h.pipeline.Algorithms()
	responses := make([]*recommend.Response, 0, len(algorithms))
	for _, alg := range algorithms {
		if resp, ok := all[alg]; ok {
			responses = append(responses, resp)
		}
	}
	return responses, nil
}

// withRequestID returns a shallow copy stamped with the current request ID,
// leaving the cached value untouched.
func withRequestID(resp *recommend.Response, requestID string) *recommend.Response {
	out := *resp
	out.Metadata.RequestID = requestID
	return &out
}

// Algorithms handles GET /api/v1/recommendations/algorithms.
func (h *Handler) Algorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	algorithms := h.pipeline.Algorithms()
	names := make([]string, len(algorithms))
	for i, alg := range algorithms {
		names[i] = alg.String()
	}

	cfg := h.pipeline.Config()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"algorithms": names,
			"k":          cfg.K,
			"n":          cfg.N,
			"max_k":      cfg.MaxK,
			"max_n":      cfg.MaxN,
			"strict":     cfg.Strict,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
