// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/backoffice/internal/core/item"
	"github.com/taibuivan/backoffice/internal/guard"
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/session"
	"github.com/taibuivan/backoffice/internal/users/account"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

// page is one screen of the console.
type page struct {
	title string
	// protected pages need a resolved user; role narrows that further.
	protected bool
	role      auth.Role
	render    func(ctx context.Context) error
}

func (a *App) pages() map[string]page {
	return map[string]page{
		constants.RouteHome:         {title: "Backoffice", render: a.renderHome},
		constants.RouteLogin:        {title: "Sign in", render: a.renderLogin},
		constants.RouteRegister:     {title: "Create an account", render: a.renderRegister},
		constants.RouteDashboard:    {title: "Dashboard", protected: true, render: a.renderDashboard},
		constants.RouteItems:        {title: "Items", protected: true, render: a.renderItems},
		constants.RouteUsers:        {title: "Users", protected: true, role: auth.RoleAdmin, render: a.renderUsers},
		constants.RouteProfile:      {title: "Profile", protected: true, render: a.renderProfile},
		constants.RouteSettings:     {title: "Settings", protected: true, render: a.renderSettings},
		constants.RouteUnauthorized: {title: "Unauthorized", render: a.renderUnauthorized},
	}
}

/*
visit opens path the way a browser navigation would.

Description: The cookie-only route guard runs first, then the session's
role check for protected pages. Redirects are followed up to maxRedirects.

Returns:
  - bool: true if path itself was rendered (no redirect)
*/
func (a *App) visit(ctx context.Context, path string) bool {
	pages := a.pages()
	target := path

	for range maxRedirects {
		if decision := guard.Decide(target, a.hasCookie(ctx)); !decision.Allowed() {
			a.logger.DebugContext(ctx, "page_redirect", slog.String("from", target), slog.String("to", decision.Redirect), slog.String("by", "guard"))
			target = decision.Redirect
			continue
		}

		pg, ok := pages[target]
		if !ok {
			a.notifier.Error("Page not found")
			a.shown = a.nav.Current()
			return false
		}

		if pg.protected {
			access := a.session.Enforce(pg.role)
			if access == session.AccessPending {
				fmt.Fprintln(a.out, "Loading...")
				return false
			}
			if redirect := access.Target(); redirect != "" {
				a.logger.DebugContext(ctx, "page_redirect", slog.String("from", target), slog.String("to", redirect), slog.String("by", "session"))
				target = redirect
				continue
			}
		}

		a.nav.Navigate(target)
		a.shown = target

		fmt.Fprintf(a.out, "\n== %s ==\n", pg.title)
		if err := pg.render(ctx); err != nil {
			a.report(ctx, err)
		}
		return target == path
	}

	a.logger.WarnContext(ctx, "page_redirect_loop", slog.String("path", path))
	a.notifier.Error("Too many redirects. Type 'logout' to reset your session.")
	a.shown = a.nav.Current()
	return false
}

// # Public Pages

func (a *App) renderHome(context.Context) error {
	fmt.Fprintln(a.out, "Manage items and users from the console.")
	if user := a.session.User(); user != nil {
		fmt.Fprintf(a.out, "Signed in as %s. Type 'go /dashboard' to continue.\n", user.DisplayName())
		return nil
	}
	fmt.Fprintln(a.out, "Type 'login' to sign in or 'register' to create an account.")
	return nil
}

func (a *App) renderLogin(context.Context) error {
	fmt.Fprintln(a.out, "Enter your email and password to access the console. Type 'login'.")
	return nil
}

func (a *App) renderRegister(context.Context) error {
	fmt.Fprintln(a.out, "Enter your details to get started. Type 'register'.")
	return nil
}

func (a *App) renderUnauthorized(context.Context) error {
	fmt.Fprintln(a.out, "You do not have permission to access this page.")
	return nil
}

// # Protected Pages

// dashboardStats are placeholder figures; the backend has no stats endpoint.
var dashboardStats = []struct {
	title       string
	value       string
	description string
}{
	{"Total Users", formatCount(124), "+12% from last month"},
	{"Total Items", formatCount(573), "+23% from last month"},
	{"Active Sessions", formatCount(89), "Current active users"},
	{"Revenue", printer.Sprintf("$%d", 12345), "+8% from last month"},
}

func (a *App) renderDashboard(context.Context) error {
	if user := a.session.User(); user != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n\n", user.DisplayName())
	}

	t := newTable(a.out, "METRIC", "VALUE", "")
	for _, stat := range dashboardStats {
		t.row(stat.title, stat.value, stat.description)
	}
	t.flush()
	return nil
}

func (a *App) renderItems(ctx context.Context) error {
	items, err := a.items.List(ctx, item.ListFilter{})
	if err != nil {
		return err
	}
	a.printItems(items)
	return nil
}

func (a *App) renderUsers(ctx context.Context) error {
	users, err := a.accounts.List(ctx, account.ListFilter{})
	if err != nil {
		return err
	}
	a.printUsers(users)
	return nil
}

func (a *App) renderProfile(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Loading...")
		return nil
	}

	a.printUser(user)

	if info, ok := a.auth.TokenClaims(ctx); ok && !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(a.now()) {
			state = "expired"
		}
		fmt.Fprintf(a.out, "Token:       expires %s (%s)\n", info.ExpiresAt.Local().Format("2006-01-02 15:04"), state)
	}

	fmt.Fprintln(a.out, "\nType 'profile edit' to update your details or 'passwd' to change your password.")
	return nil
}

func (a *App) renderSettings(context.Context) error {
	snapshot := a.session.Snapshot()
	fmt.Fprintf(a.out, "Session:     %s\n", snapshot.State)
	if snapshot.User != nil {
		fmt.Fprintf(a.out, "Role:        %s\n", snapshot.User.Role.Label())
	}
	fmt.Fprintln(a.out, "\nType 'passwd' to change your password.")
	return nil
}

// # Rendering

func (a *App) printItems(items []item.Item) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items yet.")
		return
	}

	t := newTable(a.out, "ID", "TITLE", "PRICE", "QTY", "CATEGORY", "STATUS", "AVAILABLE")
	for _, it := range items {
		t.row(it.ID, it.Title, formatPrice(it.Price), formatCount(it.Quantity), it.Category.Label(), it.Status.Label(), yesNo(it.IsAvailable))
	}
	t.flush()
	fmt.Fprintf(a.out, "%s item(s)\n", formatCount(len(items)))
}

func (a *App) printItem(it *item.Item) {
	fmt.Fprintf(a.out, "ID:          %s\n", it.ID)
	fmt.Fprintf(a.out, "Title:       %s\n", it.Title)
	fmt.Fprintf(a.out, "Description: %s\n", orDash(it.Description))
	fmt.Fprintf(a.out, "Price:       %s\n", formatPrice(it.Price))
	fmt.Fprintf(a.out, "Quantity:    %s\n", formatCount(it.Quantity))
	fmt.Fprintf(a.out, "Category:    %s\n", it.Category.Label())
	fmt.Fprintf(a.out, "Status:      %s\n", it.Status.Label())
	fmt.Fprintf(a.out, "Available:   %s\n", yesNo(it.IsAvailable))
	fmt.Fprintf(a.out, "Updated:     %s\n", it.UpdatedAt)
}

func (a *App) printUsers(users []auth.User) {
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return
	}

	t := newTable(a.out, "ID", "EMAIL", "NAME", "ROLE", "ACTIVE")
	for _, u := range users {
		t.row(u.ID, u.Email, orDash(u.FullName), u.Role.Label(), yesNo(u.IsActive))
	}
	t.flush()
}

func (a *App) printUser(user *auth.User) {
	fmt.Fprintf(a.out, "ID:          %s\n", user.ID)
	fmt.Fprintf(a.out, "Email:       %s\n", user.Email)
	fmt.Fprintf(a.out, "Full name:   %s\n", orDash(user.FullName))
	fmt.Fprintf(a.out, "Role:        %s\n", user.Role.Label())
	fmt.Fprintf(a.out, "Active:      %s\n", yesNo(user.IsActive))
	fmt.Fprintf(a.out, "Member since %s\n", strings.SplitN(user.CreatedAt, "T", 2)[0])
}
