// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/tomtom215/reelrank/internal/models"
)

func movieTitles(resp models.MoviesResponse) []string {
	out := make([]string, 0, len(resp.Movies))
	for _, m := range resp.Movies {
		out = append(out, m.Title)
	}
	return out
}

func TestListMovies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantTitles []string
		wantTotal  int
		wantMore   bool
	}{
		{name: "default page", query: "", wantTitles: []string{"A", "B", "C", "D"}, wantTotal: 4},
		{name: "first page", query: "?limit=2", wantTitles: []string{"A", "B"}, wantTotal: 4, wantMore: true},
		{name: "last page", query: "?limit=2&offset=3", wantTitles: []string{"D"}, wantTotal: 4},
		{name: "offset past end", query: "?offset=10", wantTitles: []string{}, wantTotal: 4},
		{name: "genre filter", query: "?genre=Drama", wantTitles: []string{"B", "C"}, wantTotal: 2},
		{name: "title search", query: "?q=c", wantTitles: []string{"C"}, wantTotal: 1},
		{name: "genre and title", query: "?genre=Action&q=b", wantTitles: []string{"B"}, wantTotal: 1},
		{name: "unknown genre", query: "?genre=Western", wantTitles: []string{}, wantTotal: 0},
	}

	srv := newTestServer(newTestHandler(t, 0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doRequest(t, srv, http.MethodGet, "/api/v1/movies"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
			}

			var resp models.MoviesResponse
			decodeData(t, decodeEnvelope(t, rec), &resp)

			if got := movieTitles(resp); !reflect.DeepEqual(got, tt.wantTitles) {
				t.Errorf("titles = %v, want %v", got, tt.wantTitles)
			}
			if resp.Pagination.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", resp.Pagination.Total, tt.wantTotal)
			}
			if resp.Pagination.More != tt.wantMore {
				t.Errorf("has_more = %v, want %v", resp.Pagination.More, tt.wantMore)
			}
		})
	}
}

func TestListMovies_InvalidPagination(t *testing.T) {
	t.Parallel()

	srv := newTestServer(newTestHandler(t, 0))
	for _, query := range []string{"?limit=0", "?limit=501", "?offset=-1"} {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/movies"+query, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", query, rec.Code, http.StatusBadRequest)
			continue
		}
		if env := decodeEnvelope(t, rec); env.Error.Code != CodeValidation {
			t.Errorf("%s: code = %q, want %q", query, env.Error.Code, CodeValidation)
		}
	}
}

func TestGetMovie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantCode   string
		wantTitle  string
	}{
		{name: "found", id: "2", wantStatus: http.StatusOK, wantTitle: "B"},
		{name: "missing", id: "99", wantStatus: http.StatusNotFound, wantCode: CodeMovieNotFound},
		{name: "not numeric", id: "abc", wantStatus: http.StatusBadRequest, wantCode: CodeInvalidMovieID},
	}

	srv := newTestServer(newTestHandler(t, 0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doRequest(t, srv, http.MethodGet, "/api/v1/movies/"+tt.id, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if tt.wantCode != "" {
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %q", env.Error, tt.wantCode)
				}
				return
			}

			var movie struct {
				ID     int      `json:"movie_id"`
				Title  string   `json:"title"`
				Genres []string `json:"genres"`
			}
			decodeData(t, env, &movie)
			if movie.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", movie.Title, tt.wantTitle)
			}
			if want := []string{"Action", "Drama"}; !reflect.DeepEqual(movie.Genres, want) {
				t.Errorf("genres = %v, want %v", movie.Genres, want)
			}
		})
	}
}

func TestGenres(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(newTestHandler(t, 0)), http.MethodGet, "/api/v1/genres", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp models.GenresResponse
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if want := []string{"Action", "Comedy", "Drama"}; !reflect.DeepEqual(resp.Genres, want) {
		t.Errorf("genres = %v, want %v", resp.Genres, want)
	}
}

func TestDataset(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(newTestHandler(t, 0)), http.MethodGet, "/api/v1/dataset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var info models.DatasetInfo
	decodeData(t, decodeEnvelope(t, rec), &info)

	want := models.DatasetInfo{Source: "csv", Movies: 4, Ratings: 6, Users: 2, Genres: 3}
	if info.Source != want.Source || info.Movies != want.Movies || info.Ratings != want.Ratings ||
		info.Users != want.Users || info.Genres != want.Genres {
		t.Errorf("dataset = %+v, want %+v", info, want)
	}
}

func TestFilterMovies_NoFilterReturnsInput(t *testing.T) {
	t.Parallel()

	movies := newTestSnapshot(t).Catalog().Movies()
	if got := filterMovies(movies, "", ""); len(got) != len(movies) {
		t.Errorf("len(filterMovies()) = %d, want %d", len(got), len(movies))
	}
}
