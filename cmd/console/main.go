// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command console is the interactive Backoffice admin console.
//
// # Startup Sequence
//
//  1. Initialize a bootstrap logger on stderr.
//  2. Load configuration and move logging to LOG_FILE.
//  3. Open the durable token store (sqlite with migrations, redis, or memory).
//  4. Restore the token cookie jar.
//  5. Wire the API client pipeline and domain services.
//  6. Create the session and run the console until exit or signal.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/backoffice/internal/apiclient"
	"github.com/taibuivan/backoffice/internal/console"
	"github.com/taibuivan/backoffice/internal/core/item"
	"github.com/taibuivan/backoffice/internal/platform/config"
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/platform/migration"
	redisstore "github.com/taibuivan/backoffice/internal/platform/redis"
	sqlitestore "github.com/taibuivan/backoffice/internal/platform/sqlite"
	"github.com/taibuivan/backoffice/internal/session"
	"github.com/taibuivan/backoffice/internal/tokenstore"
	"github.com/taibuivan/backoffice/internal/users/account"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

func main() {
	// ── 1. Bootstrap Logger ───────────────────────────────────────────────
	// Startup failures before LOG_FILE is known go to stderr.
	log := newLogger(os.Stderr, false)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	must(log, err, "open log file")
	defer logFile.Close()

	// The terminal belongs to the REPL; logs go to the file only.
	log = newLogger(logFile, cfg.Debug)
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("api_base_url", cfg.APIBaseURL()),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	origin, err := cfg.Origin()
	must(log, err, "parse backend origin")

	// The token cookie is only marked Secure on an https origin.
	if cfg.IsProduction() && origin.Scheme != "https" {
		log.Warn("insecure_backend_origin", slog.String("origin", origin.String()))
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Durable Token Store ────────────────────────────────────────────
	durable, closeDurable, storeErr := openDurable(startupCtx, cfg, log)
	defer closeDurable()

	// ── 4. Cookie Jar ─────────────────────────────────────────────────────
	// The jar is shared with the HTTP client so the cookie rides along.
	jar, err := tokenstore.NewCookieJar()
	must(log, err, "create cookie jar")

	cookie, err := tokenstore.NewCookie(jar, origin, tokenstore.WithPersistPath(cfg.CookieJarPath))
	must(log, err, "restore token cookie")

	tokens := tokenstore.New(durable, cookie, log)
	if storeErr != nil {
		// Without durable storage sign-in cannot persist, but a restored
		// cookie is still read and cleared with the rest of the session.
		log.Error("token_store_unavailable", slog.Any("error", storeErr))
		tokens = tokenstore.CookieOnly(cookie, log)
	}

	// ── 5. API Client Pipeline ────────────────────────────────────────────
	navigator := console.NewNavigator(constants.RouteHome, log)
	notifier := console.NewNotifier(os.Stdout, log)

	errorHandler := &apiclient.DefaultErrorHandler{
		Tokens:    tokens,
		Navigator: navigator,
		Notifier:  notifier,
		Logger:    log,
	}

	httpClient := &http.Client{Jar: jar, Timeout: cfg.RequestTimeout}
	client := apiclient.New(cfg.APIBaseURL(), httpClient, tokens, errorHandler, log)

	authService := auth.NewService(client, tokens, log)
	accountService := account.NewService(client, log)
	itemService := item.NewService(client, log)

	// ── 6. Session & Console ──────────────────────────────────────────────
	userSession := session.New(authService, navigator, log)

	app := console.New(console.Deps{
		Session:   userSession,
		Auth:      authService,
		Accounts:  accountService,
		Items:     itemService,
		Cookie:    cookie,
		Navigator: navigator,
		Notifier:  notifier,
		Prompter:  console.NewPrompter(os.Stdin, os.Stdout),
		Out:       os.Stdout,
		Logger:    log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stdout, "Backoffice console %s. Backend: %s. Type 'help'.\n", constants.AppVersion, cfg.APIBaseURL())

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			log.Error("console_failed", slog.Any("error", err))
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
		fmt.Fprintln(os.Stdout)
	}

	log.Info("console stopped cleanly")
}

// openDurable opens the durable token backend selected by STORAGE_DRIVER.
// The returned close func is never nil.
func openDurable(ctx context.Context, cfg *config.Config, log *slog.Logger) (tokenstore.Backend, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return tokenstore.NewDurable(tokenstore.NewMemoryKV()), noop, nil

	case config.StorageRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, noop, err
		}
		return tokenstore.NewDurable(tokenstore.NewRedisKV(rdb)), func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}, nil

	default:
		if err := migration.RunUp(cfg.StoragePath, log); err != nil {
			return nil, noop, err
		}
		db, err := sqlitestore.Open(ctx, cfg.StoragePath, log)
		if err != nil {
			return nil, noop, err
		}
		return tokenstore.NewDurable(tokenstore.NewSQLiteKV(db)), func() {
			log.Info("closing sqlite database")
			if cerr := db.Close(); cerr != nil {
				log.Error("sqlite close error", slog.Any("error", cerr))
			}
		}, nil
	}
}

// newLogger builds the JSON logger every log line goes through.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName+"-console"))
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
