// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// defaultMoviesLimit is the page size when limit is absent.
const defaultMoviesLimit = 50

// moviesQuery holds the validated query parameters of ListMovies.
type moviesQuery struct {
	Limit  int    `json:"limit" validate:"gte=1,lte=500"`
	Offset int    `json:"offset" validate:"gte=0"`
	Genre  string `json:"genre" validate:"max=100"`
	Query  string `json:"q" validate:"max=200"`
}

// ListMovies handles GET /api/v1/movies?limit=&offset=&genre=&q=
//
// genre matches exactly; q is a case-insensitive title substring.
// Movies are returned in catalog order.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	query := moviesQuery{
		Limit:  getIntParam(r, "limit", defaultMoviesLimit),
		Offset: getIntParam(r, "offset", 0),
		Genre:  r.URL.Query().Get("genre"),
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	matched := filterMovies(h.pipeline.Snapshot().Catalog().Movies(), query.Genre, query.Query)

	total := len(matched)
	lo := min(query.Offset, total)
	hi := min(lo+query.Limit, total)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.MoviesResponse{
			Movies: matched[lo:hi],
			Pagination: models.PaginationInfo{
				Limit:  query.Limit,
				Offset: query.Offset,
				Total:  total,
				More:   hi < total,
			},
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

func filterMovies(movies []recommend.Movie, genre, query string) []recommend.Movie {
	if genre == "" && query == "" {
		return movies
	}
	query = strings.ToLower(query)

	out := make([]recommend.Movie, 0)
	for _, m := range movies {
		if genre != "" && !slices.Contains(m.Genres, genre) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(m.Title), query) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GetMovie handles GET /api/v1/movies/{id}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidMovieID, "Invalid movie ID", nil)
		return
	}

	movie, ok := h.pipeline.Snapshot().Catalog().Movie(id)
	if !ok {
		respondError(w, http.StatusNotFound, CodeMovieNotFound, "Movie not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   movie,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Genres handles GET /api/v1/genres
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.GenresResponse{
			Genres: h.pipeline.Snapshot().Catalog().Genres(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Dataset handles GET /api/v1/dataset
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.datasetInfo(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// datasetInfo fills the snapshot counts into the configured dataset info.
func (h *Handler) datasetInfo() models.DatasetInfo {
	info := h.dataset
	snap := h.pipeline.Snapshot()
	catalog := snap.Catalog()
	info.Movies = catalog.Len()
	info.Ratings = len(snap.Ratings())
	info.Users = snap.Users()
	info.Genres = len(catalog.Genres())
	info.AmbiguousTitles = catalog.AmbiguousTitles()
	return info
}
