// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/taibuivan/backoffice/internal/apiclient"
)

// # Endpoints

const (
	PathItems = "/items"
	PathMine  = "/items/my"
)

func itemPath(id string) string { return PathItems + "/" + url.PathEscape(id) }

// Service implements item management against the backend.
type Service struct {
	client *apiclient.Client
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(client *apiclient.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// List returns the items matching filter.
func (service *Service) List(context context.Context, filter ListFilter) ([]Item, error) {
	return service.list(context, PathItems, filter.Query())
}

// ListMine returns the items owned by the current user.
func (service *Service) ListMine(context context.Context, skip, limit *int) ([]Item, error) {
	return service.list(context, PathMine, ListFilter{Skip: skip, Limit: limit}.Query())
}

func (service *Service) list(context context.Context, path string, query url.Values) ([]Item, error) {
	var payload itemListPayload
	if err := service.client.Get(context, path, query, &payload); err != nil {
		return nil, apiclient.ShapeError(err, resourceItem)
	}
	return payload.validate()
}

// Get returns a single item by ID.
func (service *Service) Get(context context.Context, id string) (*Item, error) {
	return service.one(context, apiclient.Request{Method: http.MethodGet, Path: itemPath(id)})
}

/*
Create validates input, applies defaults, and creates the item.

Parameters:
  - context: context.Context
  - input: ItemCreate

Returns:
  - *Item: The created item as stored by the backend
  - error: VALIDATION_ERROR, INVALID_RESPONSE, or pipeline errors
*/
func (service *Service) Create(context context.Context, input ItemCreate) (*Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := service.one(context, apiclient.Request{Method: http.MethodPost, Path: PathItems, JSON: input})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "item_created", slog.String("item_id", created.ID))
	return created, nil
}

// Update applies a partial update and returns the stored result.
func (service *Service) Update(context context.Context, id string, input ItemUpdate) (*Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return service.one(context, apiclient.Request{Method: http.MethodPatch, Path: itemPath(id), JSON: input})
}

// Publish moves an item to the published status.
func (service *Service) Publish(context context.Context, id string) (*Item, error) {
	return service.one(context, apiclient.Request{Method: http.MethodPost, Path: itemPath(id) + "/publish"})
}

// Delete removes an item.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.client.Delete(context, itemPath(id)); err != nil {
		return err
	}

	service.logger.InfoContext(context, "item_deleted", slog.String("item_id", id))
	return nil
}

func (service *Service) one(context context.Context, request apiclient.Request) (*Item, error) {
	var payload itemPayload
	if err := service.client.Send(context, request, &payload); err != nil {
		return nil, apiclient.ShapeError(err, resourceItem)
	}
	return payload.validate()
}
