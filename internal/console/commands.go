// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taibuivan/backoffice/internal/guard"
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/platform/validate"
	"github.com/taibuivan/backoffice/internal/session"
	"github.com/taibuivan/backoffice/internal/users/account"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

// errUsage is returned for malformed command arguments.
var errUsage = errors.New("invalid arguments, type 'help' for usage")

/*
enter makes path the current page before a command works on it.

Description: If the console already shows path, the guard and role checks
are repeated silently; otherwise the page is visited and rendered.

Returns:
  - ok: the command may proceed on path
  - rendered: the page was rendered by this call
*/
func (a *App) enter(ctx context.Context, path string) (ok, rendered bool) {
	if a.shown == path && a.allowed(ctx, path) {
		return true, false
	}
	return a.visit(ctx, path), true
}

// allowed reports whether path would render without a redirect.
func (a *App) allowed(ctx context.Context, path string) bool {
	if !guard.Decide(path, a.hasCookie(ctx)).Allowed() {
		return false
	}

	pg, ok := a.pages()[path]
	if !ok {
		return false
	}
	return !pg.protected || a.session.Require(pg.role) == session.AccessAllow
}

// # Navigation

func (a *App) cmdGo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	path := args[0]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if _, ok := a.pages()[path]; !ok {
		a.notifier.Error("Page not found")
		return nil
	}

	a.visit(ctx, path)
	return nil
}

func (a *App) cmdRefresh(ctx context.Context, _ []string) error {
	a.session.Refresh(ctx)
	fmt.Fprintf(a.out, "Session %s.\n", a.session.State())
	a.shown = ""
	return nil
}

// # Authentication

func (a *App) cmdLogin(ctx context.Context, _ []string) error {
	if ok, _ := a.enter(ctx, constants.RouteLogin); !ok {
		return nil
	}

	email, err := a.prompter.Line("Email: ")
	if err != nil {
		return err
	}
	password, err := a.prompter.Password("Password: ")
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}

	a.notifier.Success("Login successful!")
	return nil
}

func (a *App) cmdRegister(ctx context.Context, _ []string) error {
	if ok, _ := a.enter(ctx, constants.RouteRegister); !ok {
		return nil
	}

	email, err := a.prompter.Line("Email: ")
	if err != nil {
		return err
	}
	fullName, err := a.prompter.Line("Full name: ")
	if err != nil {
		return err
	}
	password, err := a.prompter.Password("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.prompter.Password("Confirm password: ")
	if err != nil {
		return err
	}

	err = (&validate.Validator{}).
		Custom(auth.FieldConfirmPassword, confirm != password, "Passwords don't match").
		Err()
	if err != nil {
		return err
	}

	input := account.UserCreate{Email: email, FullName: fullName, Password: password}
	if _, err := a.accounts.Register(ctx, input); err != nil {
		return err
	}

	a.notifier.Success("Registration successful! Please log in.")
	a.nav.Navigate(constants.RouteLogin)
	return nil
}

func (a *App) cmdLogout(ctx context.Context, _ []string) error {
	a.session.Logout(ctx)
	return nil
}

// # Profile

func (a *App) cmdProfile(ctx context.Context, args []string) error {
	ok, rendered := a.enter(ctx, constants.RouteProfile)
	if !ok {
		return nil
	}

	if len(args) == 0 {
		if !rendered {
			return a.renderProfile(ctx)
		}
		return nil
	}
	if args[0] != "edit" {
		return errUsage
	}

	user := a.session.User()
	if user == nil {
		return nil
	}

	var input account.UserUpdate
	var err error
	if input.FullName, err = a.prompter.Optional("Full name", orDash(user.FullName)); err != nil {
		return err
	}
	if input.Email, err = a.prompter.Optional("Email", user.Email); err != nil {
		return err
	}

	if input.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	if _, err := a.accounts.Update(ctx, user.ID, input); err != nil {
		return err
	}

	a.notifier.Success("Profile updated successfully")
	a.session.Refresh(ctx)
	a.shown = ""
	return nil
}

func (a *App) cmdPasswd(ctx context.Context, _ []string) error {
	if ok, _ := a.enter(ctx, constants.RouteProfile); !ok {
		return nil
	}

	current, err := a.prompter.Password("Current password: ")
	if err != nil {
		return err
	}
	next, err := a.prompter.Password("New password: ")
	if err != nil {
		return err
	}
	confirm, err := a.prompter.Password("Confirm new password: ")
	if err != nil {
		return err
	}

	if err := auth.ValidatePasswordChange(current, next, confirm); err != nil {
		return err
	}

	if _, err := a.auth.ChangePassword(ctx, current, next); err != nil {
		return err
	}

	a.notifier.Success("Password changed successfully")
	return nil
}
