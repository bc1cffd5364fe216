// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/users/account"
	"github.com/taibuivan/backoffice/internal/users/auth"
	"github.com/taibuivan/backoffice/pkg/pointer"
)

// cmdUsers is the admin user management screen.
func (a *App) cmdUsers(ctx context.Context, args []string) error {
	ok, rendered := a.enter(ctx, constants.RouteUsers)
	if !ok {
		return nil
	}

	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		if len(args) == 0 && rendered {
			return nil
		}
		var filter account.ListFilter
		if len(args) > 0 {
			filter.Role = pointer.To(auth.Role(strings.ToLower(args[0])))
		}
		users, err := a.accounts.List(ctx, filter)
		if err != nil {
			return err
		}
		a.printUsers(users)
		return nil

	case "new":
		return a.createUser(ctx)
	}

	if len(args) != 1 {
		return errUsage
	}
	id := args[0]

	switch sub {
	case "show":
		user, err := a.accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		a.printUser(user)
		return nil

	case "edit":
		return a.editUser(ctx, id)

	case "delete":
		sure, err := a.confirm("Are you sure you want to delete this user?")
		if err != nil || !sure {
			return err
		}
		if err := a.accounts.Delete(ctx, id); err != nil {
			return err
		}
		a.notifier.Success("User deleted successfully")
		return a.renderUsers(ctx)

	default:
		return errUsage
	}
}

func (a *App) createUser(ctx context.Context) error {
	var input account.UserCreate
	var err error

	if input.Email, err = a.prompter.Line("Email: "); err != nil {
		return err
	}
	if input.FullName, err = a.prompter.Line("Full name: "); err != nil {
		return err
	}
	if input.Password, err = a.prompter.Password("Password: "); err != nil {
		return err
	}
	if input.Role, err = a.promptRole(auth.RoleUser); err != nil {
		return err
	}
	if input.IsActive, err = a.prompter.OptionalBool("Active", true); err != nil {
		return err
	}

	if _, err := a.accounts.Create(ctx, input); err != nil {
		return err
	}

	a.notifier.Success("User created successfully")
	return a.renderUsers(ctx)
}

func (a *App) editUser(ctx context.Context, id string) error {
	current, err := a.accounts.Get(ctx, id)
	if err != nil {
		return err
	}

	var input account.UserUpdate

	if input.Email, err = a.prompter.Optional("Email", current.Email); err != nil {
		return err
	}
	if input.FullName, err = a.prompter.Optional("Full name", orDash(current.FullName)); err != nil {
		return err
	}

	password, err := a.prompter.Password("New password (blank to keep): ")
	if err != nil {
		return err
	}
	input.Password = pointer.NonZero(password)

	if input.Role, err = a.promptRole(current.Role); err != nil {
		return err
	}
	if input.IsActive, err = a.prompter.OptionalBool("Active", current.IsActive); err != nil {
		return err
	}

	if input.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	if _, err := a.accounts.Update(ctx, id, input); err != nil {
		return err
	}

	a.notifier.Success("User updated successfully")

	// Editing yourself changes the session user.
	if self := a.session.User(); self != nil && self.ID == id {
		a.session.Refresh(ctx)
	}
	return a.renderUsers(ctx)
}

func (a *App) promptRole(current auth.Role) (*auth.Role, error) {
	options := make([]string, len(auth.Roles))
	for i, role := range auth.Roles {
		options[i] = string(role)
	}

	raw, err := a.prompter.Optional("Role ("+strings.Join(options, ", ")+")", string(current))
	if err != nil || raw == nil {
		return nil, err
	}
	return pointer.To(auth.Role(strings.ToLower(*raw))), nil
}
