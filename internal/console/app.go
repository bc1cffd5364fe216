// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package console implements the interactive admin console.

The console plays the part of a browser tab: it shows one page at a time,
owns the session, and talks to the backend through the shared API client.

Flow:

	prompt -> command -> page context -> services -> pipeline -> backend
	                          |
	       ForceNavigate -----+-> cancel, restart session, show new page

Every page passes the same route guard as the edge server (cookie only),
then the session's role check, before it is rendered.
*/
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/backoffice/internal/apiclient"
	"github.com/taibuivan/backoffice/internal/core/item"
	"github.com/taibuivan/backoffice/internal/platform/apperr"
	"github.com/taibuivan/backoffice/internal/session"
	"github.com/taibuivan/backoffice/internal/tokenstore"
	"github.com/taibuivan/backoffice/internal/users/account"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

// maxRedirects bounds a chain of guard and role redirects for one visit.
const maxRedirects = 5

// Deps wires an [App]. Every field is required except Now.
type Deps struct {
	Session   *session.Session
	Auth      *auth.Service
	Accounts  *account.Service
	Items     *item.Service
	Cookie    tokenstore.Backend
	Navigator *Navigator
	Notifier  *Notifier
	Prompter  *Prompter
	Out       io.Writer
	Logger    *slog.Logger
	Now       func() time.Time
}

// App is the running console.
type App struct {
	session  *session.Session
	auth     *auth.Service
	accounts *account.Service
	items    *item.Service
	cookie   tokenstore.Backend
	nav      *Navigator
	notifier *Notifier
	prompter *Prompter
	out      io.Writer
	logger   *slog.Logger
	now      func() time.Time

	statusMu sync.Mutex
	status   string

	// shown is the page rendered last; only the REPL goroutine touches it.
	shown string
}

// New builds the console from its dependencies.
func New(deps Deps) *App {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &App{
		session:  deps.Session,
		auth:     deps.Auth,
		accounts: deps.Accounts,
		items:    deps.Items,
		cookie:   deps.Cookie,
		nav:      deps.Navigator,
		notifier: deps.Notifier,
		prompter: deps.Prompter,
		out:      deps.Out,
		logger:   deps.Logger,
		now:      now,
		status:   session.Uninitialized.String(),
	}
}

/*
Run starts the session and serves commands until exit or end of input.

Description: The session is started here, once the REPL owns the terminal,
and stopped when Run returns.

Parameters:
  - ctx: context.Context (cancellation ends the loop after the current command)

Returns:
  - error: Input failures only; command errors are reported to the user
*/
func (a *App) Run(ctx context.Context) error {
	unsubscribe := a.session.Subscribe(a.onSession)
	defer unsubscribe()

	a.session.Start(ctx)
	defer a.session.Stop()

	a.settle(ctx)

	for {
		line, err := a.prompter.Line(a.prompt())
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("console: read command: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}

		if quit := a.exec(ctx, line); quit {
			return nil
		}
		a.settle(ctx)
	}
}

// # Dispatch

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"help":     {"help", "Show available commands", a.cmdHelp},
		"go":       {"go <path>", "Open a page (/, /dashboard, /items, /users, /profile, /settings)", a.cmdGo},
		"login":    {"login", "Sign in", a.cmdLogin},
		"register": {"register", "Create an account", a.cmdRegister},
		"logout":   {"logout", "Sign out", a.cmdLogout},
		"refresh":  {"refresh", "Reload the current user from the server", a.cmdRefresh},
		"profile":  {"profile [edit]", "Show or edit your profile", a.cmdProfile},
		"passwd":   {"passwd", "Change your password", a.cmdPasswd},
		"items":    {"items [list [search]|mine|show|new|edit|delete|publish] [id]", "Manage items", a.cmdItems},
		"users":    {"users [list [role]|show|new|edit|delete] [id]", "Manage users (admin)", a.cmdUsers},
	}
}

// exec runs one command line inside a fresh page context.
func (a *App) exec(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	if name == "exit" || name == "quit" {
		return true
	}

	cmd, ok := a.commands()[name]
	if !ok {
		fmt.Fprintf(a.out, "Unknown command %q. Type 'help'.\n", name)
		return false
	}

	pageCtx, done := a.nav.BeginPage(ctx)
	defer done()

	a.logger.DebugContext(pageCtx, "command_started", slog.String("command", name), slog.String("page", a.nav.Current()))

	if err := cmd.run(pageCtx, args); err != nil {
		a.report(pageCtx, err)
	}
	return false
}

// settle applies what the last command left behind: a forced reload
// restarts the session, and a page change renders the new page.
func (a *App) settle(ctx context.Context) {
	for range maxRedirects {
		if a.nav.TakeReload() {
			a.logger.InfoContext(ctx, "session_restart", slog.String("page", a.nav.Current()))
			a.session.Stop()
			a.session.Start(ctx)
			a.shown = ""
		}

		current := a.nav.Current()
		if current == a.shown {
			return
		}
		a.show(ctx, current)
	}
}

// show visits path inside its own page context.
func (a *App) show(ctx context.Context, path string) {
	pageCtx, done := a.nav.BeginPage(ctx)
	defer done()
	a.visit(pageCtx, path)
}

/*
report shows a command failure as a toast.

Description: Failures the error handler already announced are only logged,
and nothing is shown when the page was left while the command ran.
*/
func (a *App) report(ctx context.Context, err error) {
	if errors.Is(err, io.EOF) {
		return
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		a.logger.Debug("command_aborted", slog.Any("error", err))
		return
	}

	if announced(err) {
		a.logger.InfoContext(ctx, "command_failed", slog.Any("error", err))
		return
	}

	if apperr.HasCode(err, apperr.CodeInvalidResponse) {
		a.logger.ErrorContext(ctx, "invalid_response", slog.Any("error", err))
	}

	a.notifier.Error(apiclient.ErrorMessage(err))
}

// announced reports whether the pipeline's error handler already notified
// the user of err. It stays silent for 401 and 422 only.
func announced(err error) bool {
	var transportErr *apiclient.TransportError
	if errors.As(err, &transportErr) {
		return true
	}

	switch apiclient.StatusOf(err) {
	case 0, http.StatusUnauthorized, http.StatusUnprocessableEntity:
		return false
	default:
		return true
	}
}

// # Prompt

func (a *App) onSession(snapshot session.Snapshot) {
	status := snapshot.State.String()
	if snapshot.User != nil {
		status = fmt.Sprintf("%s (%s)", snapshot.User.Email, snapshot.User.Role)
	}

	a.statusMu.Lock()
	a.status = status
	a.statusMu.Unlock()
}

func (a *App) prompt() string {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	return fmt.Sprintf("backoffice %s [%s]> ", a.nav.Current(), a.status)
}

// # Helpers

func (a *App) hasCookie(ctx context.Context) bool {
	token, err := a.cookie.Read(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "cookie_read_failed", slog.Any("error", err))
		return false
	}
	return token != ""
}

func (a *App) confirm(question string) (bool, error) {
	answer, err := a.prompter.Line(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (a *App) cmdHelp(context.Context, []string) error {
	commands := a.commands()
	names := []string{"go", "login", "register", "logout", "refresh", "profile", "passwd", "items", "users", "help"}

	t := newTable(a.out, "COMMAND", "DESCRIPTION")
	for _, name := range names {
		t.row(commands[name].usage, commands[name].help)
	}
	t.row("exit", "Leave the console")
	t.flush()
	return nil
}
