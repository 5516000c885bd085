// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// CatalogOptions controls catalog construction.
type CatalogOptions struct {
	// AllowDuplicateTitles keeps going when titles collide. Colliding titles
	// are removed from the title index and never resolve.
	AllowDuplicateTitles bool
}

// Catalog indexes the movie table by id, title and genre.
// It is read-only after NewCatalog returns.
type Catalog struct {
	movies     []Movie
	byID       map[int]int
	byTitle    map[string]int
	ambiguous  []string
	genres     []string
	genreIndex map[string]int
}

// NewCatalog validates and indexes movies. The input slice is copied.
func NewCatalog(movies []Movie, opts CatalogOptions) (*Catalog, error) {
	if len(movies) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		movies:     make([]Movie, len(movies)),
		byID:       make(map[int]int, len(movies)),
		byTitle:    make(map[string]int, len(movies)),
		genreIndex: make(map[string]int),
	}

	titleIDs := make(map[string][]int)
	genreSet := make(map[string]struct{})

	for i, m := range movies {
		if prev, ok := c.byID[m.ID]; ok {
			return nil, fmt.Errorf("%w: %d (rows %d and %d)", ErrDuplicateMovieID, m.ID, prev, i)
		}
		m.Genres = normalizeGenres(m.Genres)
		c.movies[i] = m
		c.byID[m.ID] = i
		titleIDs[m.Title] = append(titleIDs[m.Title], m.ID)
		for _, g := range m.Genres {
			genreSet[g] = struct{}{}
		}
	}

	for title, ids := range titleIDs {
		if len(ids) == 1 {
			c.byTitle[title] = c.byID[ids[0]]
			continue
		}
		if !opts.AllowDuplicateTitles {
			sort.Ints(ids)
			return nil, &DuplicateTitleError{Title: title, MovieIDs: ids}
		}
		c.ambiguous = append(c.ambiguous, title)
	}
	sort.Strings(c.ambiguous)

	c.genres = make([]string, 0, len(genreSet))
	for g := range genreSet {
		c.genres = append(c.genres, g)
	}
	sort.Strings(c.genres)
	for i, g := range c.genres {
		c.genreIndex[g] = i
	}

	return c, nil
}

// normalizeGenres trims names and drops blanks and repeats, keeping order.
func normalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Movies returns the catalog rows in load order. The slice must not be modified.
func (c *Catalog) Movies() []Movie {
	return c.movies
}

// Movie returns the movie with the given id.
func (c *Catalog) Movie(id int) (Movie, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Index returns the row position of a movie id.
func (c *Catalog) Index(id int) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Lookup resolves an exact, case-sensitive title to a movie id.
func (c *Catalog) Lookup(title string) (int, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return 0, false
	}
	return c.movies[i].ID, true
}

// Genres returns the sorted genre vocabulary.
func (c *Catalog) Genres() []string {
	return c.genres
}

// GenreIndex returns the column of a genre in the vocabulary.
func (c *Catalog) GenreIndex(genre string) (int, bool) {
	i, ok := c.genreIndex[genre]
	return i, ok
}

// AmbiguousTitles lists titles shared by more than one movie.
// It is only non-empty when AllowDuplicateTitles was set.
func (c *Catalog) AmbiguousTitles() []string {
	return c.ambiguous
}
