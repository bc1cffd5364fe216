// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/backoffice/internal/guard"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		path     string
		hasToken bool
		redirect string
	}{
		{"/", false, ""},
		{"/", true, ""},
		{"/login", false, ""},
		{"/register", false, ""},
		{"/login/reset", false, ""},
		{"/login", true, "/dashboard"},
		{"/register", true, "/dashboard"},
		{"/registered-users", true, "/dashboard"},
		{"/dashboard", false, "/login"},
		{"/items", false, "/login"},
		{"/items/9a2d3c4e", false, "/login"},
		{"/profile", false, "/login"},
		{"/dashboard", true, ""},
		{"/items", true, ""},
		{"/unauthorized", false, "/login"},
	}

	for _, tt := range tests {
		name := tt.path
		if tt.hasToken {
			name += "_with_token"
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.redirect, guard.Decide(tt.path, tt.hasToken).Redirect)
		})
	}
}

func TestBypassed(t *testing.T) {
	for _, path := range []string{"/api/v1/items", "/static/app.js", "/assets/logo.png", "/favicon.ico", "/health", "/ready"} {
		assert.True(t, guard.Bypassed(path), path)
	}
	for _, path := range []string{"/", "/dashboard", "/login", "/items"} {
		assert.False(t, guard.Bypassed(path), path)
	}
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := guard.Middleware("access_token")(next)

	tests := []struct {
		name     string
		path     string
		cookie   string
		status   int
		location string
	}{
		{"anonymous_protected", "/dashboard", "", http.StatusTemporaryRedirect, "http://console.local/login"},
		{"anonymous_public", "/", "", http.StatusOK, ""},
		{"anonymous_login", "/login", "", http.StatusOK, ""},
		{"token_on_login", "/login", "abc", http.StatusTemporaryRedirect, "http://console.local/dashboard"},
		{"token_protected", "/items", "abc", http.StatusOK, ""},
		{"empty_cookie_counts_as_present", "/items", "", http.StatusOK, ""},
		{"api_bypass", "/api/v1/users/me", "", http.StatusOK, ""},
		{"dot_segments_leave_api", "/api/../users", "", http.StatusTemporaryRedirect, "http://console.local/login"},
		{"dot_segments_leave_static", "/static/../dashboard", "", http.StatusTemporaryRedirect, "http://console.local/login"},
		{"dot_segments_leave_health", "/health/../dashboard", "", http.StatusTemporaryRedirect, "http://console.local/login"},
		{"dot_segments_into_login", "/items/../login", "abc", http.StatusTemporaryRedirect, "http://console.local/dashboard"},
		{"dot_segments_within_api", "/api/v1/../v1/items", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://console.local"+tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			if tt.name == "empty_cookie_counts_as_present" {
				req.Header.Set("Cookie", "access_token=")
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}
