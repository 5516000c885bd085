// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/report"
)

// run scores the configured profile with every configured pipeline and
// writes the report to w in configured order.
func run(ctx context.Context, cfg *config.Config, w io.Writer) error {
	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(ds, cfg)
	if err != nil {
		return err
	}
	return recommendProfile(ctx, pipeline, cfg, w)
}

func recommendProfile(ctx context.Context, pipeline *recommend.Pipeline, cfg *config.Config, w io.Writer) error {
	reporter, err := report.New(w, report.Options{
		Format:  cfg.Report.Format,
		NoColor: cfg.Report.NoColor,
	})
	if err != nil {
		return err
	}

	req := recommend.Request{
		Items:     cfg.Profile.Items,
		RequestID: logging.GenerateRequestID(),
	}
	results, err := pipeline.RecommendAll(ctx, req)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	algs := cfg.Algorithms()
	responses := make([]*recommend.Response, 0, len(algs))
	for _, alg := range algs {
		if resp, ok := results[alg]; ok {
			responses = append(responses, resp)
		}
	}

	logging.Info().
		Str("request_id", req.RequestID).
		Int("profile_items", len(req.Items)).
		Int("pipelines", len(responses)).
		Msg("Recommendations computed")

	return reporter.Write(responses)
}
