// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taibuivan/backoffice/internal/platform/ctxutil"
)

// Navigator tracks the page shown by the console and owns the context of the
// command running on it.
//
// # Concurrency
//
// The pipeline may call ForceNavigate from inside a request while the REPL
// goroutine reads Current, so all fields are guarded by mu.
type Navigator struct {
	mu      sync.Mutex
	current string
	cancel  context.CancelFunc
	reload  bool
	logger  *slog.Logger
}

// NewNavigator starts on the given page.
func NewNavigator(start string, logger *slog.Logger) *Navigator {
	return &Navigator{current: start, logger: logger}
}

// Current returns the path of the page being shown.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate switches pages within the running session.
func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	n.current = path
	n.mu.Unlock()
}

// ForceNavigate switches to path, cancels the work of the current page and
// schedules a session restart.
func (n *Navigator) ForceNavigate(path string) {
	n.mu.Lock()
	from := n.current
	n.current = path
	n.reload = true
	cancel := n.cancel
	n.cancel = nil
	n.mu.Unlock()

	n.logger.Info("page_reload", slog.String("from", from), slog.String("to", path))

	if cancel != nil {
		cancel()
	}
}

/*
BeginPage derives the context for one command on the current page.

Description: A later ForceNavigate cancels the returned context, which
aborts every request the command still has in flight.

Returns:
  - context.Context: The page context
  - func(): Releases the context; must be called when the command returns
*/
func (n *Navigator) BeginPage(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctxutil.WithPage(parent, n.Current()))

	n.mu.Lock()
	n.cancel = cancel
	n.mu.Unlock()

	return ctx, func() {
		n.mu.Lock()
		n.cancel = nil
		n.mu.Unlock()
		cancel()
	}
}

// TakeReload reports whether a ForceNavigate happened since the last call.
func (n *Navigator) TakeReload() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	reload := n.reload
	n.reload = false
	return reload
}
