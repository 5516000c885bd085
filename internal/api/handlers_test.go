// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/recommend/algorithms"
)

// testEnvelope mirrors models.APIResponse with undecoded data.
type testEnvelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

// blockingScorer waits for its context to end.
type blockingScorer struct{}

func (blockingScorer) Name() recommend.Algorithm { return recommend.AlgorithmContent }

func (blockingScorer) Score(ctx context.Context, _ *recommend.Snapshot, _ recommend.Profile, _ recommend.ScoreOptions) (*recommend.Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestSnapshot(t *testing.T) *recommend.Snapshot {
	t.Helper()

	catalog, err := recommend.NewCatalog([]recommend.Movie{
		{ID: 1, Title: "A", Genres: []string{"Action"}},
		{ID: 2, Title: "B", Genres: []string{"Action", "Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Drama"}},
		{ID: 4, Title: "D", Genres: []string{"Comedy"}},
	}, recommend.CatalogOptions{})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	snap, err := recommend.NewSnapshot(catalog, []recommend.Rating{
		{UserID: 1, MovieID: 1, Value: 5},
		{UserID: 1, MovieID: 2, Value: 3},
		{UserID: 1, MovieID: 4, Value: 4},
		{UserID: 2, MovieID: 1, Value: 2},
		{UserID: 2, MovieID: 2, Value: 4},
		{UserID: 2, MovieID: 3, Value: 5},
	})
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return snap
}

// newTestPipeline registers the given scorers, or both real scorers when none are given.
func newTestPipeline(t *testing.T, cfg *recommend.Config, scorers ...recommend.Scorer) *recommend.Pipeline {
	t.Helper()

	p, err := recommend.NewPipeline(newTestSnapshot(t), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	if scorers == nil {
		scorers = []recommend.Scorer{
			algorithms.NewCollaborative(algorithms.DefaultCollaborativeConfig(), zerolog.Nop()),
			algorithms.NewContent(zerolog.Nop()),
		}
	}
	for _, s := range scorers {
		p.RegisterScorer(s)
	}
	return p
}

func newTestHandler(t *testing.T, cacheSize int) *Handler {
	t.Helper()

	logger := zerolog.Nop()
	return NewHandler(newTestPipeline(t, nil), HandlerOptions{
		Version:   "test",
		Dataset:   models.DatasetInfo{Source: "csv"},
		CacheSize: cacheSize,
		Logger:    &logger,
	})
}

// newTestServer routes requests through the full middleware stack with
// rate limiting disabled.
func newTestServer(h *Handler) http.Handler {
	chiMw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		RateLimitDisabled:  true,
	})
	return NewRouter(h, chiMw, zerolog.Nop()).SetupChi()
}

func doRequest(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env testEnvelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, 0)
	if h.cache != nil {
		t.Error("cache should be nil when CacheSize is 0")
	}
	if h.CleanupCache() != 0 {
		t.Error("CleanupCache() on disabled cache should remove nothing")
	}

	h = newTestHandler(t, 10)
	if h.cache == nil {
		t.Fatal("Expected cache to be initialized")
	}
	if h.startTime.IsZero() {
		t.Error("Expected startTime to be set")
	}
}
