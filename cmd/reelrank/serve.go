// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/reelrank/internal/api"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/dataset"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/supervisor"
	"github.com/tomtom215/reelrank/internal/supervisor/services"
)

// serve runs the HTTP API under the supervisor tree until ctx is canceled.
func serve(ctx context.Context, cfg *config.Config) error {
	metrics.SetAppInfo(version)

	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(ds, cfg)
	if err != nil {
		return err
	}

	// === INITIALIZE SUPERVISOR TREE ===
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	handler := newHandler(pipeline, ds.Stats, cfg)
	router := api.NewRouter(handler, api.NewChiMiddleware(chiMiddlewareConfig(cfg)), logging.WithComponent("http"))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http-server")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server added to supervisor tree")

	if cfg.Server.CacheSize > 0 {
		tree.AddMaintenanceService(services.NewCacheJanitorService(handler, services.DefaultCleanupInterval, logging.WithComponent("cache-janitor")))
		logging.Info().
			Int("size", cfg.Server.CacheSize).
			Dur("ttl", cfg.Server.CacheTTL).
			Msg("Response cache enabled")
	}

	// === START SUPERVISOR TREE ===
	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}

func newHandler(pipeline *recommend.Pipeline, stats dataset.LoadStats, cfg *config.Config) *api.Handler {
	logger := logging.WithComponent("api")
	return api.NewHandler(pipeline, api.HandlerOptions{
		Version: version,
		Dataset: models.DatasetInfo{
			Source:         stats.Source,
			LoadedAt:       stats.EndTime,
			LoadDurationMS: stats.Duration().Milliseconds(),
		},
		CacheSize: cfg.Server.CacheSize,
		CacheTTL:  cfg.Server.CacheTTL,
		Logger:    &logger,
	})
}

func chiMiddlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		mw.CORSAllowedOrigins = cfg.Server.CORSOrigins
	}
	mw.RateLimitRequests = cfg.Server.RateLimitRequests
	mw.RateLimitWindow = cfg.Server.RateLimitWindow
	mw.RateLimitDisabled = cfg.Server.RateLimitDisabled
	return mw
}
