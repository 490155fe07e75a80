// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/nodevision/internal/api"
	"github.com/tomtom215/nodevision/internal/config"
	"github.com/tomtom215/nodevision/internal/latency"
	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/render"
	"github.com/tomtom215/nodevision/internal/storage"
	"github.com/tomtom215/nodevision/internal/supervisor"
	"github.com/tomtom215/nodevision/internal/supervisor/services"
)

const (
	tempSweepMaxAge   = time.Hour
	tempSweepInterval = 10 * time.Minute
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
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", api.BackendVersion).
		Str("addr", cfg.Server.Addr()).
		Str("storage_dir", cfg.Storage.Dir).
		Str("bench_log", cfg.Preview.BenchLogPath).
		Msg("Starting NodeVision preview backend")

	if len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); restrict it when the backend is reachable from other hosts")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED")
	}

	renderSvc := render.NewServiceFromConfig(cfg.Preview)
	store := storage.NewStore(cfg.Storage.Dir, cfg.Storage.DefaultSlot)
	recorder := latency.NewRecorder(cfg.Preview.BenchLogPath)

	handler := api.NewHandler(renderSvc, store, recorder)
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddStorageService(services.NewStorageSweepService(store, tempSweepMaxAge, tempSweepInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel delivers a single value once the root supervisor returns.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("NodeVision stopped")
}
