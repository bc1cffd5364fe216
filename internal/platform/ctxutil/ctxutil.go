// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil reads and writes the request-scoped values shared by the
edge server and the console.

Values:
  - Request ID: correlates an edge request or a console command with the
    backend calls it makes.
  - Page: the console page a command runs on; it tags pipeline logs.
  - Logger: the edge server's per-request logger.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taibuivan/backoffice/internal/platform/ctxkey"
)

// # Correlation

// WithRequestID attaches id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the request ID on ctx, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// RequestIDOrNew returns the request ID on ctx, or a fresh UUID when none
// is set. The new ID is not stored.
func RequestIDOrNew(ctx context.Context) string {
	if id := GetRequestID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// # Console Page

// WithPage records the console page path on ctx.
func WithPage(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyPage, path)
}

// GetPage returns the page path on ctx, or "" outside a console command.
func GetPage(ctx context.Context) string {
	page, _ := ctx.Value(ctxkey.KeyPage).(string)
	return page
}

// # Logging

// WithLogger attaches a request-scoped logger to ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the logger on ctx, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
