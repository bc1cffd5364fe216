// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys read by [ctxutil]. Values are only
// set and read through ctxutil so their types stay in one place.
package ctxkey

// key keeps these keys distinct from any other package's string keys.
type key string

const (
	// KeyRequestID carries the X-Request-ID value, set by the edge server's
	// RequestID middleware and forwarded by the API client.
	KeyRequestID key = "request_id"

	// KeyLogger carries the request-scoped *slog.Logger of the edge server.
	KeyLogger key = "logger"

	// KeyPage carries the console page a command was started on.
	KeyPage key = "page"
)
