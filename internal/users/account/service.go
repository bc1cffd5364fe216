// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/backoffice/internal/apiclient"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

// Service implements user management against the backend.
type Service struct {
	client *apiclient.Client
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(client *apiclient.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

/*
Register creates a self-service account.

Parameters:
  - context: context.Context
  - input: UserCreate

Returns:
  - *auth.User: The created account
  - error: VALIDATION_ERROR, INVALID_RESPONSE, or pipeline errors (e.g. 400 "Email already registered")
*/
func (service *Service) Register(context context.Context, input UserCreate) (*auth.User, error) {
	user, err := service.Create(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// Create creates a user with the given attributes.
func (service *Service) Create(context context.Context, input UserCreate) (*auth.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var payload auth.UserPayload
	if err := service.client.PostJSON(context, PathUsers, input, &payload); err != nil {
		return nil, apiclient.ShapeError(err, auth.ResourceUser)
	}

	return payload.Validate()
}

// List returns the users matching filter.
func (service *Service) List(context context.Context, filter ListFilter) ([]auth.User, error) {
	var payload auth.UserListPayload
	if err := service.client.Get(context, PathUsers, filter.Query(), &payload); err != nil {
		return nil, apiclient.ShapeError(err, auth.ResourceUser)
	}

	return payload.Validate()
}

// Get returns a single user by ID.
func (service *Service) Get(context context.Context, id string) (*auth.User, error) {
	var payload auth.UserPayload
	if err := service.client.Get(context, userPath(id), nil, &payload); err != nil {
		return nil, apiclient.ShapeError(err, auth.ResourceUser)
	}

	return payload.Validate()
}

// Update applies a partial update and returns the stored result.
func (service *Service) Update(context context.Context, id string, input UserUpdate) (*auth.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var payload auth.UserPayload
	if err := service.client.Patch(context, userPath(id), input, &payload); err != nil {
		return nil, apiclient.ShapeError(err, auth.ResourceUser)
	}

	return payload.Validate()
}

// Delete removes a user.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.client.Delete(context, userPath(id)); err != nil {
		return err
	}

	service.logger.InfoContext(context, "user_deleted", slog.String("user_id", id))
	return nil
}
