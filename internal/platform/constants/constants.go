// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines routes, credential storage keys, default timeouts, and rate limits
that are shared between the console, the edge server and the API client.

Categories:

  - Routes: Page paths known to the guard, the session and the console.
  - Credentials: Storage key, cookie name and cookie lifetime for the token.
  - Backend API: Default origin and versioned prefix.
  - Server Timing: Read/Write/Idle timeouts for the edge server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "backoffice"
	AppVersion = "0.1.0-dev"
)

// # Routes

const (
	RouteHome         = "/"
	RouteLogin        = "/login"
	RouteRegister     = "/register"
	RouteDashboard    = "/dashboard"
	RouteItems        = "/items"
	RouteUsers        = "/users"
	RouteProfile      = "/profile"
	RouteSettings     = "/settings"
	RouteUnauthorized = "/unauthorized"
)

// # Credentials

const (
	// AccessTokenKey is both the durable storage key and the cookie name of the bearer token.
	AccessTokenKey = "access_token"

	// AccessTokenCookieTTL is how long the token cookie lives before the jar drops it.
	AccessTokenCookieTTL = 24 * time.Hour

	// AccessTokenCookiePath scopes the token cookie to the whole origin.
	AccessTokenCookiePath = "/"
)

// # Backend API

const (
	// DefaultAPIOrigin is used when PUBLIC_API_URL is not set.
	DefaultAPIOrigin = "http://localhost:8000"

	// APIPrefix is appended to the origin for every backend call.
	APIPrefix = "/api/v1"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds storage connection and migrations at boot.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Storage Prefixes

const (
	// RedisPrefixStorage namespaces durable console keys in a shared Redis.
	RedisPrefixStorage = "backoffice:storage:"
)
