// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the local SQLite database that backs the console's
// durable storage.
//
// # Architecture
//
// The database is a single file owned by one console process. Schema is
// managed by the migration package; this package only opens and checks the
// connection.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

const (
	// driverName is the database/sql name registered by modernc.org/sqlite.
	driverName = "sqlite"
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
	// busyTimeoutMillis lets a second console wait briefly on a locked file.
	busyTimeoutMillis = 5000
)

// Open opens (creating if needed) the SQLite file at path and verifies it.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, busyTimeoutMillis)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	// SQLite serializes writers anyway; one connection avoids lock churn.
	db.SetMaxOpenConns(1)

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite database opened", slog.String("path", path))

	return db, nil
}

// Ping verifies that the database is reachable.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}

	return nil
}
