// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/platform/ctxutil"
)

// maxErrorBody caps how much of an error response is buffered.
const maxErrorBody = 1 << 20

// Doer sends a single HTTP request. [*http.Client] satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to [Doer].
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do implements [Doer].
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// Middleware decorates a [Doer].
type Middleware func(next Doer) Doer

// Chain wraps base so that middlewares[0] sees the request first.
func Chain(base Doer, middlewares ...Middleware) Doer {
	doer := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		doer = middlewares[i](doer)
	}
	return doer
}

// TokenReader reads the stored credential.
type TokenReader interface {
	Read(ctx context.Context) (string, bool)
}

// # Outbound

// BearerAuth attaches the stored token and a request ID to every request.
// The token is read per request, never cached.
func BearerAuth(tokens TokenReader) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()
			req = req.Clone(ctx)

			if token, ok := tokens.Read(ctx); ok {
				req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
			}

			req.Header.Set(constants.HeaderXRequestID, ctxutil.RequestIDOrNew(ctx))

			return next.Do(req)
		})
	}
}

// # Inbound

// Dispatch turns failures into typed errors and hands each one to handler
// exactly once before returning it.
//
// A request aborted because its context was cancelled (the page was left)
// is returned without running the handler.
func Dispatch(handler ErrorHandler, logger *slog.Logger) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()

			resp, err := next.Do(req)
			if err != nil {
				transportErr := &TransportError{Method: req.Method, Path: req.URL.Path, Err: err}
				if errors.Is(err, context.Canceled) {
					return nil, transportErr
				}

				logger.WarnContext(ctx, "api_request_unreachable",
					slog.String("method", req.Method),
					slog.String("path", req.URL.Path),
					slog.String("page", ctxutil.GetPage(ctx)),
					slog.Any("error", err),
				)
				handler.Handle(ctx, transportErr)
				return nil, transportErr
			}

			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}

			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			_ = resp.Body.Close()

			apiErr := &APIError{
				Status: resp.StatusCode,
				Method: req.Method,
				Path:   req.URL.Path,
				Body:   body,
				Detail: ParseErrorBody(body),
			}

			logger.InfoContext(ctx, "api_request_failed",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", resp.StatusCode),
				slog.String("page", ctxutil.GetPage(ctx)),
			)

			handler.Handle(ctx, apiErr)
			return nil, apiErr
		})
	}
}
