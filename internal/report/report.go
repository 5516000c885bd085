// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package report renders recommendation responses for the terminal.
//
// The text format prints one heading per pipeline followed by the ranked
// titles in green and their genres in red, with dimmed notes for dropped
// profile titles and skipped rows. The JSON format writes the responses
// as an indented array.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NoGenres is printed for movies without genres.
const NoGenres = "(no genres listed)"

// Options configures a Reporter.
type Options struct {
	// Format is FormatText or FormatJSON. Empty means text.
	Format string

	// NoColor disables ANSI styling in the text format.
	NoColor bool
}

// Reporter writes responses to an output stream.
type Reporter struct {
	w      io.Writer
	format string

	heading lipgloss.Style
	title   lipgloss.Style
	genres  lipgloss.Style
	note    lipgloss.Style
}

// New returns a Reporter writing to w.
func New(w io.Writer, opts Options) (*Reporter, error) {
	r := &Reporter{w: w, format: opts.Format}
	switch r.format {
	case "":
		r.format = FormatText
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown report format %q", opts.Format)
	}

	if opts.NoColor {
		plain := lipgloss.NewStyle()
		r.heading, r.title, r.genres, r.note = plain, plain, plain, plain
		return r, nil
	}

	renderer := lipgloss.NewRenderer(w)
	r.heading = renderer.NewStyle().Bold(true)
	r.title = renderer.NewStyle().Foreground(lipgloss.Color("2"))
	r.genres = renderer.NewStyle().Foreground(lipgloss.Color("1"))
	r.note = renderer.NewStyle().Faint(true)
	return r, nil
}

// Write renders responses in order.
func (r *Reporter) Write(responses []*recommend.Response) error {
	if r.format == FormatJSON {
		return r.writeJSON(responses)
	}
	for i, resp := range responses {
		if i > 0 {
			if _, err := fmt.Fprintln(r.w); err != nil {
				return err
			}
		}
		if err := r.writeText(resp); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) writeJSON(responses []*recommend.Response) error {
	if responses == nil {
		responses = []*recommend.Response{}
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(responses)
}

func (r *Reporter) writeText(resp *recommend.Response) error {
	var b strings.Builder

	b.WriteString(r.heading.Render(fmt.Sprintf("Movie Recommendations based on the %s are:", Heading(resp.Algorithm))))
	b.WriteByte('\n')

	for _, item := range resp.Items {
		b.WriteString("\t")
		b.WriteString(r.title.Render(item.Title))
		b.WriteString(" ------ ")
		b.WriteString(r.genres.Render(GenreString(item.Genres)))
		b.WriteByte('\n')
	}

	for _, note := range notes(resp) {
		b.WriteString(r.note.Render("  " + note))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Heading names a pipeline the way the report prints it.
func Heading(alg recommend.Algorithm) string {
	switch alg {
	case recommend.AlgorithmCollaborative:
		return "Collaborative Filtering"
	case recommend.AlgorithmContent:
		return "Content-based Filtering"
	}
	return alg.String()
}

// GenreString joins genres with pipes, as in the movies table.
func GenreString(genres []string) string {
	if len(genres) == 0 {
		return NoGenres
	}
	return strings.Join(genres, "|")
}

func notes(resp *recommend.Response) []string {
	var out []string
	if len(resp.Items) == 0 {
		switch {
		case resp.Degenerate:
			out = append(out, "no recommendations: every candidate was numerically degenerate")
		case resp.Profile.Resolved == 0:
			out = append(out, "no recommendations: no profile title matched the catalog")
		default:
			out = append(out, "no recommendations")
		}
	}
	if n := resp.Profile.Dropped; n > 0 {
		out = append(out, fmt.Sprintf("%d profile %s not found: %s",
			n, plural(n, "title", "titles"), strings.Join(resp.Profile.DroppedTitles, ", ")))
	}
	if n := resp.Skipped; n > 0 {
		out = append(out, fmt.Sprintf("%d %s skipped for numeric degeneracy", n, plural(n, "row", "rows")))
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
