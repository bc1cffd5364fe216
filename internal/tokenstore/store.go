// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tokenstore keeps the bearer credential in two places at once.

A [Store] pairs a [Durable] key/value backend (no expiry) with a [Cookie]
backend (expires 24h after save). Both halves are written and cleared
together; reads prefer the durable half. The two may drift once the cookie
expires on its own and nothing reconciles them: a later 401 clears both.

Processes that have no console to own the credential (the edge server, a
headless construction) use [Unavailable], which always reports absent. A
console without durable storage uses [CookieOnly].
*/
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// # Errors

var (
	// ErrEmptyToken is returned when saving an empty credential.
	ErrEmptyToken = errors.New("tokenstore: token must not be empty")

	// ErrUnavailable is returned by writes outside a live console.
	ErrUnavailable = errors.New("tokenstore: storage unavailable in this context")
)

// # Backend Contract

// Backend is one physical home of the credential.
//
// Read returns "" with a nil error when nothing is stored.
type Backend interface {
	Save(ctx context.Context, token string) error
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// # Store

// Store is the durable/cookie pair used by the API client and auth service.
//
// # Concurrency
//
// Safe for concurrent use as long as both backends are. Pair writes are not
// atomic across backends.
type Store struct {
	durable Backend
	cookie  Backend
	logger  *slog.Logger
}

// New creates a Store over the given backends.
func New(durable, cookie Backend, logger *slog.Logger) *Store {
	return &Store{durable: durable, cookie: cookie, logger: logger}
}

// Unavailable returns a Store for contexts where the credential cannot be
// reached. Read reports absent and never errors.
func Unavailable() *Store {
	return &Store{durable: unavailable{}, cookie: unavailable{}, logger: slog.Default()}
}

// CookieOnly returns a Store whose durable half is unavailable, for a
// console that could not open durable storage. The cookie is still read and
// cleared, so a 401 or a logout removes a cookie restored from disk. Save
// fails with [ErrUnavailable] before touching the cookie.
func CookieOnly(cookie Backend, logger *slog.Logger) *Store {
	return &Store{durable: unavailable{}, cookie: cookie, logger: logger}
}

// Save writes token to the durable backend, then to the cookie backend.
func (s *Store) Save(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}

	if err := s.durable.Save(ctx, token); err != nil {
		return fmt.Errorf("tokenstore: durable save: %w", err)
	}

	if err := s.cookie.Save(ctx, token); err != nil {
		return fmt.Errorf("tokenstore: cookie save: %w", err)
	}

	return nil
}

// Read returns the stored token, preferring the durable backend.
// A backend error is logged and treated as absent for that backend.
func (s *Store) Read(ctx context.Context) (string, bool) {
	if token := s.readFrom(ctx, "durable", s.durable); token != "" {
		return token, true
	}

	if token := s.readFrom(ctx, "cookie", s.cookie); token != "" {
		return token, true
	}

	return "", false
}

// IsPresent reports whether either backend holds a token.
func (s *Store) IsPresent(ctx context.Context) bool {
	_, ok := s.Read(ctx)
	return ok
}

// Clear removes the token from both backends unconditionally.
// Clearing an absent token is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	return errors.Join(
		wrapIf("durable clear", s.durable.Clear(ctx)),
		wrapIf("cookie clear", s.cookie.Clear(ctx)),
	)
}

func (s *Store) readFrom(ctx context.Context, name string, backend Backend) string {
	token, err := backend.Read(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "token_read_failed",
			slog.String("backend", name),
			slog.Any("error", err),
		)
		return ""
	}
	return token
}

func wrapIf(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("tokenstore: %s: %w", op, err)
}

// unavailable is the backend used outside a live console.
type unavailable struct{}

func (unavailable) Save(context.Context, string) error   { return ErrUnavailable }
func (unavailable) Read(context.Context) (string, error) { return "", nil }
func (unavailable) Clear(context.Context) error          { return nil }
