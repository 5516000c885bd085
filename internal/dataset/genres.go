// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package dataset

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// noGenres is the MovieLens placeholder for an untagged movie.
const noGenres = "(no genres listed)"

// ParseGenres decodes a genre cell. Blank names and repeats are dropped.
func ParseGenres(cell string) ([]string, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == noGenres {
		return nil, nil
	}

	var genres []string
	if strings.HasPrefix(cell, "[") {
		if err := json.Unmarshal([]byte(cell), &genres); err != nil {
			genres, err = parseListLiteral(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidGenres, cell, err)
			}
		}
	} else {
		genres = strings.Split(cell, "|")
	}

	return dedupe(genres), nil
}

func dedupe(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" || g == noGenres {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// parseListLiteral reads a Python list of string literals such as
// ['Action', "Children's"]. Only quoted strings are accepted as elements.
func parseListLiteral(s string) ([]string, error) {
	if !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("unterminated list")
	}
	body := strings.TrimSpace(s[1 : len(s)-1])

	var out []string
	for body != "" {
		quote := body[0]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("expected quoted string at %q", body)
		}

		var b strings.Builder
		i := 1
		closed := false
		for i < len(body) {
			c := body[i]
			if c == '\\' && i+1 < len(body) {
				b.WriteByte(body[i+1])
				i += 2
				continue
			}
			if c == quote {
				closed = true
				i++
				break
			}
			b.WriteByte(c)
			i++
		}
		if !closed {
			return nil, fmt.Errorf("unterminated string")
		}
		out = append(out, b.String())

		body = strings.TrimSpace(body[i:])
		if body == "" {
			break
		}
		if body[0] != ',' {
			return nil, fmt.Errorf("expected ',' at %q", body)
		}
		body = strings.TrimSpace(body[1:])
	}

	return out, nil
}
