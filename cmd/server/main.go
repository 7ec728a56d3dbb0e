// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("dataset", cfg.Dataset.Path).
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Marquee")

	if cfg.IsProduction() && cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := initEngine(ctx, cfg)

	router := api.NewRouter(
		api.NewHandler(engine, cfg.Recommend.Timeout),
		api.ChiMiddlewareConfigFromSecurity(&cfg.Security),
	)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})

	if cfg.Cache.Enabled {
		tree.AddMaintenanceService(services.NewCacheJanitor(
			engine, cfg.Cache.CleanupInterval, logging.WithComponent("cache-janitor"),
		))
	}
	tree.AddAPIService(services.NewHTTPServerService(
		server, cfg.Server.ShutdownTimeout, logging.WithComponent("http"),
	))

	logging.Info().Msg("Starting supervisor tree")
	for err := range tree.ServeBackground(ctx) {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Marquee stopped")
	if len(unstopped) > 0 {
		stop()
		os.Exit(1)
	}
}

// initEngine loads the catalog and builds both indices. Any failure is
// fatal; the server does not start in a degraded mode.
func initEngine(ctx context.Context, cfg *config.Config) *recommend.Engine {
	ds, err := dataset.Load(cfg.Dataset.Path, logging.WithComponent("dataset"))
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("Failed to load dataset")
	}
	metrics.UpdateDatasetGauges(len(ds.Movies), len(ds.Exploded), len(ds.Distinct), ds.Skipped)

	rcfg := recommend.DefaultConfig()
	rcfg.Limits.DefaultK = cfg.Recommend.DefaultK
	rcfg.Limits.MaxK = cfg.Recommend.MaxK
	rcfg.Cache.Enabled = cfg.Cache.Enabled
	rcfg.Cache.TTL = cfg.Cache.TTL
	rcfg.Cache.MaxEntries = cfg.Cache.MaxEntries
	rcfg.Trending.Pool = cfg.Recommend.TrendingPool
	rcfg.Trending.Count = cfg.Recommend.TrendingCount
	rcfg.Trending.Seed = cfg.Recommend.TrendingSeed
	rcfg.Workers = cfg.Index.Workers

	engine, err := recommend.NewEngine(ctx, ds, rcfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build similarity indices")
	}

	for _, s := range recommend.Strategies {
		info, ok := engine.IndexInfo(s)
		if !ok {
			continue
		}
		metrics.UpdateIndexGauges(string(s), info.Titles, info.Vocabulary, info.ZeroVectors,
			time.Duration(info.BuildLatencyMS)*time.Millisecond)
	}
	return engine
}
