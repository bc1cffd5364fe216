// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/taibuivan/backoffice/internal/core/item"
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/pkg/pointer"
)

func (a *App) cmdItems(ctx context.Context, args []string) error {
	ok, rendered := a.enter(ctx, constants.RouteItems)
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
		filter := item.ListFilter{Search: pointer.NonZero(strings.Join(args, " "))}
		items, err := a.items.List(ctx, filter)
		if err != nil {
			return err
		}
		a.printItems(items)
		return nil

	case "mine":
		items, err := a.items.ListMine(ctx, nil, nil)
		if err != nil {
			return err
		}
		a.printItems(items)
		return nil

	case "new":
		return a.createItem(ctx)
	}

	if len(args) != 1 {
		return errUsage
	}
	id := args[0]

	switch sub {
	case "show":
		it, err := a.items.Get(ctx, id)
		if err != nil {
			return err
		}
		a.printItem(it)
		return nil

	case "edit":
		return a.editItem(ctx, id)

	case "delete":
		sure, err := a.confirm("Are you sure you want to delete this item?")
		if err != nil || !sure {
			return err
		}
		if err := a.items.Delete(ctx, id); err != nil {
			return err
		}
		a.notifier.Success("Item deleted successfully")
		return a.renderItems(ctx)

	case "publish":
		if _, err := a.items.Publish(ctx, id); err != nil {
			return err
		}
		a.notifier.Success("Item published successfully")
		return a.renderItems(ctx)

	default:
		return errUsage
	}
}

// createItem prompts for a new item. Blank optional answers take the
// defaults applied by [item.ItemCreate.Validate].
func (a *App) createItem(ctx context.Context) error {
	var input item.ItemCreate
	var err error

	if input.Title, err = a.prompter.Line("Title: "); err != nil {
		return err
	}
	if input.Description, err = a.prompter.Optional("Description", "none"); err != nil {
		return err
	}

	rawPrice, err := a.prompter.Line("Price: ")
	if err != nil {
		return err
	}
	if input.Price, err = strconv.ParseFloat(rawPrice, 64); err != nil {
		return fmt.Errorf("%s: not a number", item.FieldPrice)
	}

	if input.Quantity, err = a.prompter.OptionalInt("Quantity", item.DefaultQuantity); err != nil {
		return err
	}
	if input.Category, err = a.promptCategory(item.CategoryOther); err != nil {
		return err
	}
	if input.Status, err = a.promptStatus(item.StatusDraft); err != nil {
		return err
	}
	if input.IsAvailable, err = a.prompter.OptionalBool("Available", true); err != nil {
		return err
	}

	if _, err := a.items.Create(ctx, input); err != nil {
		return err
	}

	a.notifier.Success("Item created successfully")
	return a.renderItems(ctx)
}

// editItem prompts for a partial update; blank answers keep the value.
func (a *App) editItem(ctx context.Context, id string) error {
	current, err := a.items.Get(ctx, id)
	if err != nil {
		return err
	}

	var input item.ItemUpdate

	if input.Title, err = a.prompter.Optional("Title", current.Title); err != nil {
		return err
	}
	if input.Description, err = a.prompter.Optional("Description", orDash(current.Description)); err != nil {
		return err
	}
	if input.Price, err = a.prompter.OptionalFloat("Price", current.Price); err != nil {
		return err
	}
	if input.Quantity, err = a.prompter.OptionalInt("Quantity", current.Quantity); err != nil {
		return err
	}
	if input.Category, err = a.promptCategory(current.Category); err != nil {
		return err
	}
	if input.Status, err = a.promptStatus(current.Status); err != nil {
		return err
	}
	if input.IsAvailable, err = a.prompter.OptionalBool("Available", current.IsAvailable); err != nil {
		return err
	}

	if input == (item.ItemUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	if _, err := a.items.Update(ctx, id, input); err != nil {
		return err
	}

	a.notifier.Success("Item updated successfully")
	return a.renderItems(ctx)
}

func (a *App) promptCategory(current item.Category) (*item.Category, error) {
	options := make([]string, len(item.Categories))
	for i, category := range item.Categories {
		options[i] = string(category)
	}

	raw, err := a.prompter.Optional("Category ("+strings.Join(options, ", ")+")", string(current))
	if err != nil || raw == nil {
		return nil, err
	}
	return pointer.To(item.Category(strings.ToLower(*raw))), nil
}

func (a *App) promptStatus(current item.Status) (*item.Status, error) {
	options := make([]string, len(item.Statuses))
	for i, status := range item.Statuses {
		options[i] = string(status)
	}

	raw, err := a.prompter.Optional("Status ("+strings.Join(options, ", ")+")", string(current))
	if err != nil || raw == nil {
		return nil, err
	}
	return pointer.To(item.Status(strings.ToLower(*raw))), nil
}
