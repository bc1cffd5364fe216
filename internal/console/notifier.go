// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Notifier prints toast messages between the REPL prompts.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

// NewNotifier writes toasts to out.
func NewNotifier(out io.Writer, logger *slog.Logger) *Notifier {
	return &Notifier{out: out, logger: logger}
}

// Error shows a failure toast.
func (n *Notifier) Error(message string) {
	n.logger.Info("toast_error", slog.String("message", message))
	n.print("✗", message)
}

// Success shows a confirmation toast.
func (n *Notifier) Success(message string) {
	n.print("✓", message)
}

func (n *Notifier) print(mark, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", mark, message)
}
