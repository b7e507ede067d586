// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tutorials HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialize structured logger.
//  3. Open the storage backend (PostgreSQL with migrations, or memory).
//  4. Wire HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/tutorials/internal/api"
	"github.com/taibuivan/tutorials/internal/core/tutorial"
	"github.com/taibuivan/tutorials/internal/platform/config"
	"github.com/taibuivan/tutorials/internal/platform/constants"
	"github.com/taibuivan/tutorials/internal/platform/logger"
	"github.com/taibuivan/tutorials/internal/platform/metrics"
	"github.com/taibuivan/tutorials/internal/platform/middleware"
	"github.com/taibuivan/tutorials/internal/platform/migration"
	pgstore "github.com/taibuivan/tutorials/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run wires and serves the API. Every resource opened here is released by a
// deferred close before run returns, including on startup failures.
func run() error {
	// ── 1. Configuration ──────────────────────────────────────────────────
	// A bootstrap logger reports configuration failures as structured JSON.
	bootLog, _ := logger.New(logger.Options{})

	cfg, err := config.Load()
	if err != nil {
		return startupFailure(bootLog, err, "load configuration")
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	log, logCloser := logger.New(logger.Options{Debug: cfg.DebugLogging(), File: cfg.LogFile})
	defer logCloser.Close()
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
	)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	var (
		repository tutorial.Repository
		healthDeps api.HealthDependencies
	)

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		startupCancel()
		if err != nil {
			return startupFailure(log, err, "connect to postgres")
		}
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		if cfg.AutoMigrate {
			if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
				return startupFailure(log, err, "run migrations")
			}
		}

		repository = tutorial.NewPostgresRepository(pool)
		healthDeps.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}

	case config.DriverMemory:
		log.Warn("memory_storage_selected", slog.String("note", "data is lost on restart"))
		repository = tutorial.NewMemoryRepository()
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	appMetrics := metrics.New()

	tutorialService := tutorial.NewService(repository, log, appMetrics)
	tutorialHandler := tutorial.NewHandler(tutorialService)

	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanup(rootCtx)

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, appMetrics, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Tutorial:  tutorialHandler,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	var runErr error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
		runErr = err
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return err
	}

	log.Info("server_stopped_cleanly")
	return runErr
}

// startupFailure logs a structured startup error and returns it wrapped with the step name.
func startupFailure(log *slog.Logger, err error, step string) error {
	log.Error("startup_failure",
		slog.String("step", step),
		slog.Any("error", err),
	)
	return fmt.Errorf("%s: %w", step, err)
}
