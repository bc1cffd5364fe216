// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/backoffice/internal/apiclient"
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/tokenstore"
)

// # Test Doubles

type recordingNotifier struct {
	mu      sync.Mutex
	errors  []string
	success []string
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, message)
}

type recordingNavigator struct {
	current string
	forced  []string
	soft    []string
}

func (n *recordingNavigator) Current() string { return n.current }

func (n *recordingNavigator) Navigate(path string) {
	n.soft = append(n.soft, path)
	n.current = path
}

func (n *recordingNavigator) ForceNavigate(path string) {
	n.forced = append(n.forced, path)
	n.current = path
}

type fixture struct {
	client    *apiclient.Client
	tokens    *tokenstore.Store
	notifier  *recordingNotifier
	navigator *recordingNavigator
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := tokenstore.New(
		tokenstore.NewDurable(tokenstore.NewMemoryKV()),
		tokenstore.NewDurable(tokenstore.NewMemoryKV()),
		logger,
	)

	f := &fixture{
		tokens:    tokens,
		notifier:  &recordingNotifier{},
		navigator: &recordingNavigator{current: constants.RouteDashboard},
	}

	errorHandler := &apiclient.DefaultErrorHandler{
		Tokens:    tokens,
		Navigator: f.navigator,
		Notifier:  f.notifier,
		Logger:    logger,
	}

	f.client = apiclient.New(server.URL+constants.APIPrefix, server.Client(), tokens, errorHandler, logger)
	return f
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", constants.ContentTypeJSON)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// # Outbound

func TestBearerAuth(t *testing.T) {
	var gotAuth, gotRequestID, gotPath string

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(constants.HeaderXRequestID)
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{}`)
	})

	ctx := context.Background()

	require.NoError(t, f.client.Get(ctx, "/users/me", nil, nil))
	assert.Empty(t, gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "/api/v1/users/me", gotPath)

	require.NoError(t, f.tokens.Save(ctx, "abc"))
	require.NoError(t, f.client.Get(ctx, "/users/me", nil, nil))
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestPostForm_EncodesBody(t *testing.T) {
	var contentType string
	var form url.Values

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	var out struct {
		OK bool `json:"ok"`
	}
	err := f.client.PostForm(context.Background(), "/auth/login", url.Values{
		"username": {"admin@example.com"},
		"password": {"admin123"},
	}, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, constants.ContentTypeForm, contentType)
	assert.Equal(t, "admin@example.com", form.Get("username"))
	assert.Equal(t, "admin123", form.Get("password"))
}

func TestCall_Generic(t *testing.T) {
	f := newFixture(t, respondWith(http.StatusOK, `{"id":"1","title":"Laptop"}`))

	type item struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	got, err := apiclient.Call[item](context.Background(), f.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/items/1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Title)
}

// # Inbound

func TestDispatch_Unauthorized(t *testing.T) {
	f := newFixture(t, respondWith(http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`))
	ctx := context.Background()
	require.NoError(t, f.tokens.Save(ctx, "abc"))

	err := f.client.Get(ctx, "/items", nil, nil)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	assert.False(t, f.tokens.IsPresent(ctx))
	assert.Equal(t, []string{constants.RouteLogin}, f.navigator.forced)
	assert.Empty(t, f.notifier.errors)
}

func TestDispatch_UnauthorizedOnLoginPage(t *testing.T) {
	f := newFixture(t, respondWith(http.StatusUnauthorized, `{"detail":"Incorrect email or password"}`))
	f.navigator.current = constants.RouteLogin
	ctx := context.Background()
	require.NoError(t, f.tokens.Save(ctx, "stale"))

	err := f.client.PostForm(ctx, "/auth/login", url.Values{"username": {"a"}, "password": {"b"}}, nil)
	require.Error(t, err)

	assert.False(t, f.tokens.IsPresent(ctx))
	assert.Empty(t, f.navigator.forced)
}

func TestDispatch_Notifications(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected []string
	}{
		{"forbidden", http.StatusForbidden, `{"detail":"Not enough permissions"}`, []string{apiclient.MsgForbidden}},
		{"server_error", http.StatusInternalServerError, `{"detail":"boom"}`, []string{apiclient.MsgServerError}},
		{"unprocessable_silent", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","email"],"msg":"invalid","type":"value_error"}]}`, nil},
		{"unprocessable_string_silent", http.StatusUnprocessableEntity, `{"detail":"Unprocessable"}`, nil},
		{"unprocessable_unparsable_silent", http.StatusUnprocessableEntity, `not json`, nil},
		{"unprocessable_empty_silent", http.StatusUnprocessableEntity, ``, nil},
		{"string_detail", http.StatusBadRequest, `{"detail":"Email already registered"}`, []string{"Email already registered"}},
		{"list_detail", http.StatusBadRequest, `{"detail":[{"loc":["body",0],"msg":"bad","type":"x"}]}`, []string{apiclient.MsgValidation}},
		{"unparsable", http.StatusNotFound, `<html>nope</html>`, []string{apiclient.MsgGenericError}},
		{"malformed_list", http.StatusConflict, `{"detail":[{"loc":[true],"msg":"bad","type":"x"}]}`, []string{apiclient.MsgGenericError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, respondWith(tt.status, tt.body))
			ctx := context.Background()
			require.NoError(t, f.tokens.Save(ctx, "abc"))

			err := f.client.Get(ctx, "/items", nil, nil)

			assert.Equal(t, tt.status, apiclient.StatusOf(err))
			assert.Equal(t, tt.expected, f.notifier.errors)
			assert.True(t, f.tokens.IsPresent(ctx), "only 401 clears the token")
			assert.Empty(t, f.navigator.forced)
		})
	}
}

func TestDispatch_TransportError(t *testing.T) {
	f := newFixture(t, respondWith(http.StatusOK, `{}`))

	// Point the client at a closed port.
	server := httptest.NewServer(http.NotFoundHandler())
	deadURL := server.URL
	server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := &apiclient.DefaultErrorHandler{Tokens: f.tokens, Navigator: f.navigator, Notifier: f.notifier, Logger: logger}
	client := apiclient.New(deadURL, http.DefaultClient, f.tokens, handler, logger)

	err := client.Get(context.Background(), "/items", nil, nil)

	var transportErr *apiclient.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, []string{apiclient.MsgGenericError}, f.notifier.errors)
}

func TestDispatch_CancelledIsSilent(t *testing.T) {
	f := newFixture(t, respondWith(http.StatusOK, `{}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.client.Get(ctx, "/items", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, f.notifier.errors)
}

func TestDispatch_HandlerRunsOnce(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusBadRequest, `{"detail":"nope"}`))
	t.Cleanup(server.Close)

	calls := 0
	handler := apiclient.ErrorHandlerFunc(func(context.Context, error) { calls++ })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := apiclient.New(server.URL, server.Client(), tokenstore.Unavailable(), handler, logger)

	err := client.Get(context.Background(), "/x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
