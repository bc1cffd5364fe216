// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/taibuivan/backoffice/internal/platform/apperr"
	"github.com/taibuivan/backoffice/internal/platform/ctxutil"
	"github.com/taibuivan/backoffice/internal/platform/respond"
)

/*
NewProxy forwards API requests to the backend origin.

Description: Path, query, headers and cookies pass through untouched, so the
Authorization header set by the client and the token cookie both reach the
backend. An unreachable backend becomes a BAD_GATEWAY error envelope.

Parameters:
  - origin: *url.URL (backend scheme and host)
  - transport: http.RoundTripper (nil for the default)
*/
func NewProxy(origin *url.URL, transport http.RoundTripper) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(request *httputil.ProxyRequest) {
			request.SetURL(origin)
			request.Out.Host = origin.Host
			request.SetXForwarded()
		},
		Transport: transport,
		ErrorHandler: func(writer http.ResponseWriter, request *http.Request, err error) {
			ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "proxy_failed",
				slog.String("path", request.URL.Path),
				slog.Any("error", err),
			)
			respond.Error(writer, request, apperr.BadGateway(err))
		},
	}
}
