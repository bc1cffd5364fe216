// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session holds the current user for one console process and drives
the login and logout redirects.

Lifecycle:

	Uninitialized -> Loading -> Authenticated | Unauthenticated

[Session.Start] is called once the composition root has a live terminal; it
resolves the current user from the stored token. Other packages only see the
read-only [Handle], so nothing outside this package can set the user.

Refresh calls are not serialized: if a login-triggered refresh overlaps one
still in flight, both complete and the last write wins.
*/
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

// # States

// State is the session lifecycle position.
type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// # Contracts

// Authenticator is the auth service as seen by the session.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*auth.TokenResponse, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*auth.User, error)
	IsAuthenticated(ctx context.Context) bool
}

// Navigator switches pages without reloading.
type Navigator interface {
	Navigate(path string)
}

// Snapshot is an immutable view of the session at one point in time.
type Snapshot struct {
	State State
	// User is a copy; nil unless State is Authenticated.
	User *auth.User
}

// Loading reports whether the initial user resolution is still pending.
func (s Snapshot) Loading() bool {
	return s.State == Uninitialized || s.State == Loading
}

// Handle is the read-only capability handed to the rest of the console.
type Handle interface {
	State() State
	Loading() bool
	User() *auth.User
	Snapshot() Snapshot
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
	Refresh(ctx context.Context)
	Require(role auth.Role) Access
	Enforce(role auth.Role) Access
	Subscribe(listener func(Snapshot)) (cancel func())
}

// # Session

// Session is the single owner of the current user.
//
// # Concurrency
//
// Fields are guarded by a RWMutex; operations themselves are not serialized
// against each other.
type Session struct {
	mu    sync.RWMutex
	state State
	user  *auth.User

	listenersMu sync.Mutex
	listeners   map[int]func(Snapshot)
	nextID      int

	auth      Authenticator
	navigator Navigator
	logger    *slog.Logger
}

var _ Handle = (*Session)(nil)

// New creates an Uninitialized session.
func New(authenticator Authenticator, navigator Navigator, logger *slog.Logger) *Session {
	return &Session{
		auth:      authenticator,
		navigator: navigator,
		logger:    logger,
		listeners: make(map[int]func(Snapshot)),
	}
}

// # Lifecycle

// Start resolves the current user from the stored token. It moves
// Uninitialized to Loading; the refresh then settles the state.
func (s *Session) Start(ctx context.Context) {
	s.set(Loading, nil)
	s.Refresh(ctx)
}

// Stop returns to Uninitialized and drops the user.
func (s *Session) Stop() {
	s.set(Uninitialized, nil)
}

// Refresh re-reads the current user. With no token it goes straight to
// Unauthenticated. Failures are logged and leave the session Unauthenticated.
// Before Start it does nothing.
func (s *Session) Refresh(ctx context.Context) {
	if s.State() == Uninitialized {
		return
	}

	if !s.auth.IsAuthenticated(ctx) {
		s.set(Unauthenticated, nil)
		return
	}

	user, err := s.auth.GetCurrentUser(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "session_refresh_failed", slog.Any("error", err))
		s.set(Unauthenticated, nil)
		return
	}

	s.set(Authenticated, user)
}

// Login signs in, refreshes the user, and navigates to the dashboard.
// Errors are returned to the caller and nothing is navigated.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if _, err := s.auth.Login(ctx, email, password); err != nil {
		return err
	}

	s.Refresh(ctx)
	s.navigator.Navigate(constants.RouteDashboard)
	return nil
}

// Logout forgets the token, drops the user, and navigates to the login page.
// It always ends Unauthenticated.
func (s *Session) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.WarnContext(ctx, "session_logout_failed", slog.Any("error", err))

		// Retry the local clear once; the state is cleared regardless.
		if retryErr := s.auth.Logout(ctx); retryErr != nil {
			s.logger.ErrorContext(ctx, "session_logout_retry_failed", slog.Any("error", retryErr))
		}
	}

	s.set(Unauthenticated, nil)
	s.navigator.Navigate(constants.RouteLogin)
}

// # Accessors

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether the initial user resolution is still pending.
func (s *Session) Loading() bool {
	return s.Snapshot().Loading()
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *auth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// Snapshot returns a consistent copy of state and user.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, User: cloneUser(s.user)}
}

// # Listeners

// Subscribe registers listener for every state change. The returned func
// removes it.
func (s *Session) Subscribe(listener func(Snapshot)) (cancel func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Session) set(state State, user *auth.User) {
	s.mu.Lock()
	s.state = state
	s.user = cloneUser(user)
	s.mu.Unlock()

	s.notify()
}

func (s *Session) notify() {
	snapshot := s.Snapshot()

	s.listenersMu.Lock()
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.listenersMu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}

func cloneUser(user *auth.User) *auth.User {
	if user == nil {
		return nil
	}
	clone := *user
	if user.FullName != nil {
		name := *user.FullName
		clone.FullName = &name
	}
	return &clone
}
