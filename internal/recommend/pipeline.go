// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Note: This package has no dependencies on other internal packages.
// Scorers and the metrics observer are injected by the caller.

// Pipeline resolves a profile, runs a registered scorer and ranks the result.
// It is safe for concurrent use.
type Pipeline struct {
	config   *Config
	snapshot *Snapshot
	logger   zerolog.Logger

	scorers  map[Algorithm]Scorer
	scorerMu sync.RWMutex

	observer Observer
}

// NewPipeline creates a pipeline over an immutable snapshot.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipeline(snap *Snapshot, cfg *Config, logger zerolog.Logger) (*Pipeline, error) {
	if snap == nil {
		return nil, errors.New("snapshot is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Pipeline{
		config:   cfg,
		snapshot: snap,
		logger:   logger.With().Str("component", "recommend").Logger(),
		scorers:  make(map[Algorithm]Scorer),
		observer: nopObserver{},
	}, nil
}

// RegisterScorer adds a scorer, replacing any with the same name.
func (p *Pipeline) RegisterScorer(s Scorer) {
	p.scorerMu.Lock()
	defer p.scorerMu.Unlock()

	p.scorers[s.Name()] = s
	p.logger.Info().
		Str("algorithm", s.Name().String()).
		Msg("registered scorer")
}

// SetObserver installs a measurement sink. Call before serving requests.
func (p *Pipeline) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	p.observer = o
}

// Algorithms returns the registered algorithm names in sorted order.
func (p *Pipeline) Algorithms() []Algorithm {
	p.scorerMu.RLock()
	defer p.scorerMu.RUnlock()

	names := make([]Algorithm, 0, len(p.scorers))
	for name := range p.scorers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Snapshot returns the dataset the pipeline scores against.
func (p *Pipeline) Snapshot() *Snapshot {
	return p.snapshot
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() *Config {
	return p.config
}

func (p *Pipeline) scorer(alg Algorithm) (Scorer, bool) {
	p.scorerMu.RLock()
	defer p.scorerMu.RUnlock()
	s, ok := p.scorers[alg]
	return s, ok
}

// Recommend produces the top-N recommendations for one request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (p *Pipeline) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	req = p.prepareRequest(req)

	scorer, ok := p.scorer(req.Algorithm)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, req.Algorithm)
	}

	logger := p.logger.With().
		Str("request_id", req.RequestID).
		Str("algorithm", req.Algorithm.String()).
		Logger()
	logger.Debug().Int("items", len(req.Items)).Msg("processing recommendation request")

	profile, stats, err := BuildProfile(p.snapshot.Catalog(), req.Items)
	if err != nil {
		p.observer.ObserveRun(req.Algorithm, OutcomeError, time.Since(start))
		return nil, fmt.Errorf("build profile: %w", err)
	}
	if stats.Dropped > 0 {
		p.observer.ObserveDroppedTitles(stats.Dropped)
		logger.Debug().
			Int("dropped", stats.Dropped).
			Strs("titles", stats.DroppedTitles).
			Msg("profile titles not found in catalog")
	}

	result, err := p.score(ctx, scorer, profile, req)
	if err != nil {
		outcome := OutcomeError
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			outcome = OutcomeTimeout
		case errors.Is(err, ErrNumericDegeneracy):
			outcome = OutcomeDegenerate
		}
		p.observer.ObserveRun(req.Algorithm, outcome, time.Since(start))
		logger.Warn().Err(err).Str("outcome", outcome).Msg("scorer failed")
		return nil, fmt.Errorf("%s scorer: %w", req.Algorithm, err)
	}

	p.observeSkipped(req.Algorithm, result.Skipped)

	resp := p.buildResponse(req, result, stats, start)

	outcome := OutcomeSuccess
	switch {
	case result.Degenerate:
		outcome = OutcomeDegenerate
	case len(resp.Items) == 0:
		outcome = OutcomeEmpty
	}
	p.observer.ObserveRun(req.Algorithm, outcome, time.Since(start))

	logger.Debug().
		Int("resolved", stats.Resolved).
		Int("candidates", len(result.Scores)).
		Int("returned", len(resp.Items)).
		Int("skipped", len(result.Skipped)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// RecommendAll runs every registered scorer concurrently over the shared
// snapshot. The first failure cancels the others.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (p *Pipeline) RecommendAll(ctx context.Context, req Request) (map[Algorithm]*Response, error) {
	algorithms := p.Algorithms()
	responses := make([]*Response, len(algorithms))

	g, gctx := errgroup.WithContext(ctx)
	for i, alg := range algorithms {
		r := req
		r.Algorithm = alg
		g.Go(func() error {
			resp, err := p.Recommend(gctx, r)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[Algorithm]*Response, len(algorithms))
	for i, alg := range algorithms {
		out[alg] = responses[i]
	}
	return out, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (p *Pipeline) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.N <= 0 {
		req.N = p.config.N
	}
	if req.N > p.config.MaxN {
		req.N = p.config.MaxN
	}
	if req.K <= 0 {
		req.K = p.config.K
	}
	if req.K > p.config.MaxK {
		req.K = p.config.MaxK
	}
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (p *Pipeline) score(ctx context.Context, scorer Scorer, profile Profile, req Request) (*Result, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	result, err := scorer.Score(ctx, p.snapshot, profile, ScoreOptions{
		K:      req.K,
		Strict: p.config.Strict,
	})
	if err != nil {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return result, nil
}

func (p *Pipeline) observeSkipped(alg Algorithm, skipped []Skip) {
	if len(skipped) == 0 {
		return
	}
	byStage := make(map[string]int)
	for _, s := range skipped {
		byStage[s.Stage]++
	}
	for stage, n := range byStage {
		p.observer.ObserveSkipped(alg, stage, n)
	}
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (p *Pipeline) buildResponse(req Request, result *Result, stats ProfileStats, start time.Time) *Response {
	catalog := p.snapshot.Catalog()
	ranked := Rank(result.Scores, req.N)

	items := make([]ScoredMovie, 0, len(ranked))
	for _, rec := range ranked {
		movie, ok := catalog.Movie(rec.MovieID)
		if !ok {
			continue
		}
		items = append(items, ScoredMovie{
			MovieID: movie.ID,
			Title:   movie.Title,
			Genres:  movie.Genres,
			Score:   rec.Score,
		})
	}

	meta := ResponseMetadata{
		RequestID: req.RequestID,
		N:         req.N,
		Neighbors: len(result.Neighbors),
		LatencyMS: time.Since(start).Milliseconds(),
		Timestamp: time.Now(),
	}
	if req.Algorithm == AlgorithmCollaborative {
		meta.K = req.K
	}

	return &Response{
		Algorithm:    req.Algorithm,
		Items:        items,
		Profile:      stats,
		Skipped:      len(result.Skipped),
		Degenerate:   result.Degenerate,
		GenreProfile: result.GenreProfile,
		Metadata:     meta,
	}
}
