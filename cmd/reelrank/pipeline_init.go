// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/dataset"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/recommend/algorithms"
)

// loadDataset reads both tables from the configured source and records
// the load in the dataset metrics.
func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, error) {
	logger := logging.WithComponent("dataset")

	src, err := dataset.NewSource(cfg.DatasetSource(), logger)
	if err != nil {
		return nil, err
	}

	ds, err := src.Load(ctx)
	if err != nil {
		metrics.RecordDatasetLoad(src.Name(), 0, 0, 0, err)
		return nil, fmt.Errorf("load %s dataset: %w", src.Name(), err)
	}
	metrics.RecordDatasetLoad(src.Name(), ds.Stats.Movies, ds.Stats.Ratings, ds.Stats.Duration(), nil)

	logger.Info().
		Str("source", src.Name()).
		Int("movies", ds.Stats.Movies).
		Int("ratings", ds.Stats.Ratings).
		Dur("duration", ds.Stats.Duration()).
		Float64("rows_per_sec", ds.Stats.RowsPerSecond()).
		Msg("Dataset loaded")
	return ds, nil
}

// buildPipeline indexes the dataset and registers the configured scorers.
func buildPipeline(ds *dataset.Dataset, cfg *config.Config) (*recommend.Pipeline, error) {
	logger := logging.WithComponent("recommend")

	snap, err := ds.Snapshot(cfg.CatalogOptions())
	if err != nil {
		return nil, err
	}
	catalog := snap.Catalog()
	metrics.DatasetGenres.Set(float64(len(catalog.Genres())))
	if ambiguous := catalog.AmbiguousTitles(); len(ambiguous) > 0 {
		logger.Warn().
			Strs("titles", ambiguous).
			Msg("Catalog has colliding titles; profile entries naming them are dropped")
	}

	pipeline, err := recommend.NewPipeline(snap, cfg.Pipeline(), logger)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	registrar := &algorithmRegistrar{
		pipeline: pipeline,
		cfg:      cfg,
		logger:   logger,
	}
	if err := registrar.registerAll(); err != nil {
		return nil, err
	}
	pipeline.SetObserver(metrics.Observer{})

	logger.Info().
		Int("movies", catalog.Len()).
		Int("users", snap.Users()).
		Int("genres", len(catalog.Genres())).
		Int("k", cfg.Recommend.K).
		Int("n", cfg.Recommend.N).
		Bool("strict", cfg.Recommend.Strict).
		Msg("Recommendation pipeline ready")
	return pipeline, nil
}

// algorithmRegistrar holds dependencies for scorer registration.
type algorithmRegistrar struct {
	pipeline *recommend.Pipeline
	cfg      *config.Config
	logger   zerolog.Logger
}

// registerAll registers one scorer per configured algorithm.
func (r *algorithmRegistrar) registerAll() error {
	for _, alg := range r.cfg.Algorithms() {
		scorer, err := r.newScorer(alg)
		if err != nil {
			return err
		}
		r.pipeline.RegisterScorer(scorer)
		r.logger.Debug().Str("algorithm", alg.String()).Msg("registered scorer")
	}
	return nil
}

func (r *algorithmRegistrar) newScorer(alg recommend.Algorithm) (recommend.Scorer, error) {
	switch alg {
	case recommend.AlgorithmCollaborative:
		return algorithms.NewCollaborative(algorithms.CollaborativeConfig{K: r.cfg.Recommend.K}, r.logger), nil
	case recommend.AlgorithmContent:
		return algorithms.NewContent(r.logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", recommend.ErrUnknownAlgorithm, alg)
	}
}
