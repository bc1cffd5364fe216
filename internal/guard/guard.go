// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard decides, per navigation, whether a page may be shown.

The decision looks only at the path and whether a token cookie is present;
it never validates the token. An expired or revoked token is caught later by
the first backend 401.

Rules:

  - No token, not an auth page, not the public page: redirect to /login.
  - Token on an auth page (/login, /register): redirect to /dashboard.
  - Everything else is allowed.
*/
package guard

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/taibuivan/backoffice/internal/platform/constants"
)

// # Decision

// Decision is the outcome for one navigation.
type Decision struct {
	// Redirect is the target path, or "" to allow.
	Redirect string
}

// Allowed reports whether the page may be shown.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Allow is the zero Decision.
var Allow = Decision{}

// IsAuthPage reports whether path is a login or registration page.
func IsAuthPage(path string) bool {
	return strings.HasPrefix(path, constants.RouteLogin) || strings.HasPrefix(path, constants.RouteRegister)
}

// IsPublicPage reports whether path is reachable without a token.
func IsPublicPage(path string) bool {
	return path == constants.RouteHome
}

// Decide applies the guard rules. It is pure and synchronous.
func Decide(path string, hasToken bool) Decision {
	authPage := IsAuthPage(path)

	if !hasToken && !authPage && !IsPublicPage(path) {
		return Decision{Redirect: constants.RouteLogin}
	}

	if hasToken && authPage {
		return Decision{Redirect: constants.RouteDashboard}
	}

	return Allow
}

// # Bypass List

// bypassPrefixes are served without a guard decision.
var bypassPrefixes = []string{"api", "static", "assets", "favicon.ico", "health", "ready"}

// Bypassed reports whether path skips the guard entirely.
func Bypassed(path string) bool {
	trimmed := strings.TrimPrefix(path, "/")
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// # HTTP Middleware

// Middleware redirects page requests according to [Decide], reading only
// the cookie named cookieName. Redirects are 307 to an absolute URL.
func Middleware(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			page := cleanPath(request.URL.Path)

			if Bypassed(page) {
				next.ServeHTTP(writer, request)
				return
			}

			decision := Decide(page, hasCookie(request, cookieName))
			if decision.Allowed() {
				next.ServeHTTP(writer, request)
				return
			}

			http.Redirect(writer, request, absoluteURL(request, decision.Redirect), http.StatusTemporaryRedirect)
		})
	}
}

// cleanPath resolves dot segments, so "/api/../users" is judged as the
// "/users" page the router will serve.
func cleanPath(raw string) string {
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return path.Clean(raw)
}

// hasCookie reports whether a cookie named name was sent. An empty value
// still counts as present.
func hasCookie(request *http.Request, name string) bool {
	_, err := request.Cookie(name)
	return err == nil
}

// absoluteURL resolves target against the request's own scheme and host.
func absoluteURL(request *http.Request, target string) string {
	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	if forwarded := request.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	return (&url.URL{Scheme: scheme, Host: request.Host, Path: target}).String()
}
