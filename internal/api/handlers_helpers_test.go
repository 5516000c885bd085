// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/models"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"line\nbreak", "line\\x0abreak"},
		{"tab\there", "tab\\x09here"},
		{"del\x7f", "del\\x7f"},
		{"unicode ✓", "unicode ✓"},
	}

	for _, tt := range tests {
		if got := sanitizeLogValue(tt.input); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  int
	}{
		{"", 7},
		{"?n=3", 3},
		{"?n=-2", -2},
		{"?n=abc", 7},
		{"?n=2.5", 7},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		if got := getIntParam(r, "n", 7); got != tt.want {
			t.Errorf("getIntParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"a":1}`))
	if a != generateETag([]byte(`{"a":1}`)) {
		t.Error("ETag is not stable for identical input")
	}
	if a == generateETag([]byte(`{"a":2}`)) {
		t.Error("ETag collides for different input")
	}
}

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, &models.APIResponse{Status: "success", Data: map[string]int{"x": 1}})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag header")
	}
	if !strings.Contains(rec.Body.String(), `"x":1`) {
		t.Errorf("body = %s, want data", rec.Body.String())
	}
}

func TestDecodeJSONBody_TooLarge(t *testing.T) {
	t.Parallel()

	body := `{"items":[{"title":"` + strings.Repeat("x", maxBodyBytes) + `","rating":1}]}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dst models.RecommendRequest
	if err := decodeJSONBody(httptest.NewRecorder(), r, &dst); err == nil {
		t.Error("decodeJSONBody() on oversized body succeeded, want error")
	}
}

// Not parallel: swaps the global logger.
func TestRespondError_SanitizesLoggedError(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	rec := httptest.NewRecorder()
	respondError(rec, http.StatusInternalServerError, CodeRecommendation, "Failed", errors.New("boom\nforged=entry"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	out := buf.String()
	if !strings.Contains(out, `boom\\x0aforged=entry`) {
		t.Errorf("control character not escaped in log:\n%s", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single log line, got:\n%s", out)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Errorf("internal error leaked into response body: %s", rec.Body.String())
	}
}

func TestRespondError_NilErrorNotLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	respondError(httptest.NewRecorder(), http.StatusNotFound, CodeNotFound, "Route not found", nil)

	if buf.Len() != 0 {
		t.Errorf("nil error produced a log line: %s", buf.String())
	}
}
