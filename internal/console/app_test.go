// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/backoffice/internal/apiclient"
	"github.com/taibuivan/backoffice/internal/console"
	"github.com/taibuivan/backoffice/internal/core/item"
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/session"
	"github.com/taibuivan/backoffice/internal/tokenstore"
	"github.com/taibuivan/backoffice/internal/users/account"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

const (
	itemID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	ownerID = "3f1b0c2e-6b7a-4c1d-9e2f-0a1b2c3d4e5f"
)

func userJSON(email, name, role string) string {
	return `{"id":"` + ownerID + `","email":"` + email + `","full_name":"` + name + `","role":"` + role +
		`","is_active":true,"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}`
}

const itemJSON = `{"id":"` + itemID + `","title":"Laptop","description":null,"price":1299.99,"quantity":3,
	"category":"electronics","status":"published","is_available":true,"owner_id":"` + ownerID + `",
	"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-02T00:00:00Z"}`

// backend fakes the REST API. Tokens "abc" and "user-token" are valid.
type backend struct {
	mu      sync.Mutex
	created map[string]any
	deleted []string
}

func (b *backend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	authorized := func(w http.ResponseWriter, r *http.Request) (string, bool) {
		switch r.Header.Get(constants.HeaderAuthorization) {
		case "Bearer abc":
			return "admin", true
		case "Bearer user-token":
			return "user", true
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
		return "", false
	}

	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != "admin@example.com" || r.PostForm.Get("password") != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"abc","token_type":"bearer"}`)
	})

	mux.HandleFunc("GET /api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		role, ok := authorized(w, r)
		if !ok {
			return
		}
		if role == "admin" {
			_, _ = io.WriteString(w, userJSON("admin@example.com", "Admin User", "admin"))
			return
		}
		_, _ = io.WriteString(w, userJSON("jane@example.com", "Jane Doe", "user"))
	})

	mux.HandleFunc("GET /api/v1/items", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); ok {
			_, _ = io.WriteString(w, "["+itemJSON+"]")
		}
	})

	mux.HandleFunc("POST /api/v1/items", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		b.mu.Lock()
		b.created = body
		b.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, itemJSON)
	})

	mux.HandleFunc("DELETE /api/v1/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}
		b.mu.Lock()
		b.deleted = append(b.deleted, r.PathValue("id"))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

type harness struct {
	out    *bytes.Buffer
	logs   *bytes.Buffer
	nav    *console.Navigator
	tokens *tokenstore.Store
	app    *console.App
}

// newHarness wires the console the way cmd/console does, over server.
func newHarness(t *testing.T, server *httptest.Server, start, token, script string) *harness {
	t.Helper()

	jar, err := tokenstore.NewCookieJar()
	require.NoError(t, err)
	cookie, err := tokenstore.NewCookie(jar, serverOrigin(t, server))
	require.NoError(t, err)

	tokens := tokenstore.New(tokenstore.NewDurable(tokenstore.NewMemoryKV()), cookie, quietLogger())
	if token != "" {
		require.NoError(t, tokens.Save(context.Background(), token))
	}

	return assemble(server, start, script, jar, cookie, tokens)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serverOrigin(t *testing.T, server *httptest.Server) *url.URL {
	t.Helper()
	origin, err := url.Parse(server.URL)
	require.NoError(t, err)
	return origin
}

// assemble builds the console over an already prepared token store.
func assemble(server *httptest.Server, start, script string, jar http.CookieJar, cookie *tokenstore.Cookie, tokens *tokenstore.Store) *harness {
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	out := &bytes.Buffer{}

	nav := console.NewNavigator(start, logger)
	notifier := console.NewNotifier(out, logger)
	handler := &apiclient.DefaultErrorHandler{Tokens: tokens, Navigator: nav, Notifier: notifier, Logger: logger}

	httpClient := server.Client()
	httpClient.Jar = jar
	client := apiclient.New(server.URL+constants.APIPrefix, httpClient, tokens, handler, logger)

	authService := auth.NewService(client, tokens, logger)

	app := console.New(console.Deps{
		Session:   session.New(authService, nav, logger),
		Auth:      authService,
		Accounts:  account.NewService(client, logger),
		Items:     item.NewService(client, logger),
		Cookie:    cookie,
		Navigator: nav,
		Notifier:  notifier,
		Prompter:  console.NewPrompter(strings.NewReader(script), out),
		Out:       out,
		Logger:    logger,
	})

	return &harness{out: out, logs: logs, nav: nav, tokens: tokens, app: app}
}

func TestApp_LoginFlow(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	h := newHarness(t, server, constants.RouteDashboard, "", "login\nadmin@example.com\nadmin123\nitems\nexit\n")
	require.NoError(t, h.app.Run(context.Background()))

	output := h.out.String()
	assert.Contains(t, output, "== Sign in ==")
	assert.Contains(t, output, "✓ Login successful!")
	assert.Contains(t, output, "Welcome back, Admin User!")
	assert.Contains(t, output, "== Items ==")
	assert.Contains(t, output, "Laptop")
	assert.Contains(t, output, "$1,299.99")
	assert.Equal(t, constants.RouteItems, h.nav.Current())

	token, ok := h.tokens.Read(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestApp_LoginFailures(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	tests := []struct {
		name   string
		script string
		toast  string
	}{
		{"invalid_input", "login\nbad\n123\nexit\n", "✗ email: Must be a valid email address, password: Minimum 6 characters"},
		{"wrong_password", "login\nadmin@example.com\nwrong-password\nexit\n", "✗ Incorrect email or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, server, constants.RouteLogin, "", tt.script)
			require.NoError(t, h.app.Run(context.Background()))

			assert.Contains(t, h.out.String(), tt.toast)
			assert.Equal(t, constants.RouteLogin, h.nav.Current())
			assert.False(t, h.tokens.IsPresent(context.Background()))
		})
	}
}

func TestApp_StaleTokenReloadsAtLogin(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	h := newHarness(t, server, constants.RouteDashboard, "stale", "exit\n")
	require.NoError(t, h.app.Run(context.Background()))

	output := h.out.String()
	assert.Contains(t, output, "== Sign in ==")
	assert.NotContains(t, output, "== Dashboard ==")
	assert.Equal(t, constants.RouteLogin, h.nav.Current())
	assert.False(t, h.tokens.IsPresent(context.Background()))
}

func TestApp_NonAdminIsSentToUnauthorized(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	h := newHarness(t, server, constants.RouteDashboard, "user-token", "go /users\nexit\n")
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Welcome back, Jane Doe!")
	assert.Contains(t, h.out.String(), "You do not have permission to access this page.")
	assert.Equal(t, constants.RouteUnauthorized, h.nav.Current())
}

func TestApp_SignedInUserSkipsLoginPage(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	h := newHarness(t, server, constants.RouteLogin, "abc", "exit\n")
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "== Dashboard ==")
	assert.Equal(t, constants.RouteDashboard, h.nav.Current())
}

func TestApp_CreateItemAppliesDefaults(t *testing.T) {
	fake := &backend{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	// Title, description, price, then blank answers for quantity, category, status, available.
	script := "items new\nLaptop\n\n12.346\n\n\n\n\nexit\n"
	h := newHarness(t, server, constants.RouteItems, "abc", script)
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "✓ Item created successfully")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.NotNil(t, fake.created)
	assert.Equal(t, "Laptop", fake.created["title"])
	assert.InDelta(t, 12.35, fake.created["price"], 1e-9)
	assert.Equal(t, float64(1), fake.created["quantity"])
	assert.Equal(t, "other", fake.created["category"])
	assert.Equal(t, "draft", fake.created["status"])
	assert.Equal(t, true, fake.created["is_available"])
	assert.NotContains(t, fake.created, "description")
}

func TestApp_DeleteItemAsksFirst(t *testing.T) {
	fake := &backend{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	script := "items delete " + itemID + "\nn\nitems delete " + itemID + "\ny\nexit\n"
	h := newHarness(t, server, constants.RouteItems, "abc", script)
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "✓ Item deleted successfully")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{itemID}, fake.deleted)
}

func TestApp_LogoutReturnsToLogin(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	h := newHarness(t, server, constants.RouteDashboard, "abc", "logout\nexit\n")
	require.NoError(t, h.app.Run(context.Background()))

	assert.Equal(t, constants.RouteLogin, h.nav.Current())
	assert.False(t, h.tokens.IsPresent(context.Background()))
	assert.Contains(t, h.out.String(), "== Sign in ==")
}

func TestApp_MalformedItemsAreReported(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/", (&backend{}).handler(t))
	mux.HandleFunc("GET /api/v1/items", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"items":"not a list"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	h := newHarness(t, server, constants.RouteItems, "abc", "exit\n")
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "== Items ==")
	assert.Contains(t, h.out.String(), "✗ body: ")
	assert.Contains(t, h.logs.String(), "msg=invalid_response")
	assert.True(t, h.tokens.IsPresent(context.Background()))
}

func TestApp_UnknownCommandAndPage(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	h := newHarness(t, server, constants.RouteHome, "", "frobnicate\ngo /nowhere\n")
	require.NoError(t, h.app.Run(context.Background()))

	output := h.out.String()
	assert.Contains(t, output, `Unknown command "frobnicate"`)
	assert.Contains(t, output, "✗ Page not found")
	assert.Equal(t, constants.RouteHome, h.nav.Current())
}

func TestApp_CookieOnlyStoreLogoutRemovesRestoredCookie(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	ctx := context.Background()
	origin := serverOrigin(t, server)
	cookiePath := filepath.Join(t.TempDir(), "cookies.json")

	// A previous run signed in and left its cookie on disk.
	previousJar, err := tokenstore.NewCookieJar()
	require.NoError(t, err)
	previous, err := tokenstore.NewCookie(previousJar, origin, tokenstore.WithPersistPath(cookiePath))
	require.NoError(t, err)
	require.NoError(t, previous.Save(ctx, "abc"))

	jar, err := tokenstore.NewCookieJar()
	require.NoError(t, err)
	cookie, err := tokenstore.NewCookie(jar, origin, tokenstore.WithPersistPath(cookiePath))
	require.NoError(t, err)

	h := assemble(server, constants.RouteDashboard, "logout\nexit\n", jar, cookie, tokenstore.CookieOnly(cookie, quietLogger()))
	require.NoError(t, h.app.Run(ctx))

	output := h.out.String()
	assert.Contains(t, output, "Welcome back, Admin User!")
	assert.Contains(t, output, "== Sign in ==")
	assert.NotContains(t, output, "Too many redirects")
	assert.Equal(t, constants.RouteLogin, h.nav.Current())

	value, err := cookie.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, value)
	_, err = os.Stat(cookiePath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApp_CookieOnlyStoreDropsRejectedCookie(t *testing.T) {
	server := httptest.NewServer((&backend{}).handler(t))
	defer server.Close()

	ctx := context.Background()
	jar, err := tokenstore.NewCookieJar()
	require.NoError(t, err)
	cookie, err := tokenstore.NewCookie(jar, serverOrigin(t, server))
	require.NoError(t, err)
	require.NoError(t, cookie.Save(ctx, "revoked"))

	h := assemble(server, constants.RouteLogin, "exit\n", jar, cookie, tokenstore.CookieOnly(cookie, quietLogger()))
	require.NoError(t, h.app.Run(ctx))

	output := h.out.String()
	assert.Contains(t, output, "== Sign in ==")
	assert.NotContains(t, output, "Too many redirects")
	assert.Equal(t, constants.RouteLogin, h.nav.Current())

	value, err := cookie.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, value)
}
