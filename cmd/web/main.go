// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the Backoffice edge server: the route guard in front of the
// page routes, plus a same-origin proxy to the backend API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Wire health probes, pages and the API proxy.
//  4. Start HTTP server with graceful shutdown.
//
// The edge server never reads or writes the token store; it only sees the
// token cookie on incoming requests.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/backoffice/internal/platform/config"
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(false)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(true)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	origin, err := cfg.Origin()
	must(log, err, "parse backend origin")

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.WebPort),
		slog.String("backend", origin.String()),
	)

	// Root context; cancelling it stops background sweepers.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Handlers ───────────────────────────────────────────────────────
	probeClient := &http.Client{Timeout: constants.DefaultReadTimeout}
	liveness, readiness := web.NewHealthHandlers(web.HealthDependencies{
		CheckBackend: web.BackendProbe(probeClient, origin),
	}, log)

	handlers := web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Pages:     web.NewPageHandler(web.Catalog),
		Proxy:     web.NewProxy(origin, nil),
	}

	server := web.NewServer(rootCtx, cfg, log, handlers)

	// ── 4. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName+"-web"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
