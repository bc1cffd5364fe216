// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP chain of the edge server.

Order, outermost first:

  - RequestID: correlation ID, reused from the console when it sent one.
  - StructuredLogger: one line per request, including guard redirect targets.
  - RateLimit: per-IP token buckets.
  - PanicRecovery: a panic becomes a JSON 500.

The route guard lives in the guard package and is mounted after this chain,
so every redirect it issues is traced and logged.
*/
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taibuivan/backoffice/internal/platform/apperr"
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/platform/ctxutil"
	"github.com/taibuivan/backoffice/internal/platform/respond"
)

// # Request Tracing

// inboundRequestID limits which caller-supplied IDs are echoed into logs
// and response headers.
var inboundRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID attaches a correlation ID to the request context and the
// response. A well-formed X-Request-ID from the caller is kept so console
// and edge logs line up; anything else is replaced by a UUIDv7.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !inboundRequestID.MatchString(requestID) {
				requestID = newRequestID()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// # Activity Logging

// statusRecorder remembers the status written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// StructuredLogger logs status and latency of every request and stores a
// request-scoped logger in the context. Redirects log their target; only
// the presence of the token cookie is logged, never its value.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)

			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request.WithContext(ctx))

			_, cookieErr := request.Cookie(constants.AccessTokenKey)
			attrs := []slog.Attr{
				slog.Int("status", recorder.status),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
				slog.Bool("has_token", cookieErr == nil),
			}
			if location := recorder.Header().Get("Location"); location != "" && isRedirect(recorder.status) {
				attrs = append(attrs, slog.String("redirect_to", location))
			}

			requestLogger.LogAttrs(ctx, levelFor(recorder.status), "http_request_finished", attrs...)
		})
	}
}

func isRedirect(status int) bool { return status >= 300 && status < 400 }

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// # Rate Limiting

// limiterSet holds one token bucket per client IP.
type limiterSet struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*limitedClient
}

type limitedClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (set *limiterSet) allow(ip string, now time.Time) bool {
	set.mu.Lock()
	defer set.mu.Unlock()

	client, found := set.clients[ip]
	if !found {
		client = &limitedClient{limiter: rate.NewLimiter(set.rps, set.burst)}
		set.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

// sweep drops clients idle for longer than [constants.RateLimitClientTTL].
func (set *limiterSet) sweep(now time.Time) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for ip, client := range set.clients {
		if now.Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(set.clients, ip)
		}
	}
}

/*
RateLimit rejects requests above rps per client IP with a JSON 429.

Description: Idle clients are swept every [constants.RateLimitCleanupInterval]
by a goroutine that stops when ctx is cancelled.

Parameters:
  - ctx: context.Context (lifetime of the sweeper)
  - rps: float64 (sustained requests per second)
  - burst: int (bucket size)
*/
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	set := &limiterSet{rps: rate.Limit(rps), burst: burst, clients: make(map[string]*limitedClient)}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				set.sweep(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	const retryAfterSeconds = 1

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !set.allow(RealIP(request), time.Now()) {
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
				respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Reliability

// PanicRecovery turns a panic into a logged JSON 500.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 2048)
				stack = stack[:runtime.Stack(stack, false)]
				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stack)),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Helpers

// RealIP returns the client IP, preferring X-Real-IP, then the first
// X-Forwarded-For hop, then the connection address.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
