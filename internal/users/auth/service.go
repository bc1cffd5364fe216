// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth exchanges credentials for a bearer token and resolves the
current user.

It is the only component that writes the token store: Login saves the
token, Logout clears it. Every response except the password change is checked
against its expected shape before it is trusted.

Architecture:

  - Service: Login, Logout, GetCurrentUser, ChangePassword.
  - Payloads: Pointer-field wire types validated into domain entities.
  - Claims: Unverified JWT inspection for display only.
*/
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/taibuivan/backoffice/internal/apiclient"
	"github.com/taibuivan/backoffice/internal/platform/validate"
)

// # Contracts

// TokenStore is the credential storage used by the service.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Read(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

// Service implements the authentication use cases against the backend.
type Service struct {
	client *apiclient.Client
	tokens TokenStore
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(client *apiclient.Client, tokens TokenStore, logger *slog.Logger) *Service {
	return &Service{client: client, tokens: tokens, logger: logger}
}

// # Credential Exchange

/*
Login exchanges an email and password for a bearer token and stores it.

Description: The backend's login endpoint is form-based, so credentials are
sent as username/password form fields. A 401 here has already cleared any
stale token by the time the error is returned.

Parameters:
  - ctx: context.Context
  - email: Login email, sent as "username"
  - password: Plain-text password

Returns:
  - *TokenResponse: The validated credential
  - error: VALIDATION_ERROR, INVALID_RESPONSE, or a pipeline error
*/
func (service *Service) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	if err := ValidateLogin(email, password); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set(FieldUsername, email)
	form.Set(FieldPassword, password)

	var payload tokenPayload
	if err := service.client.PostForm(ctx, PathLogin, form, &payload); err != nil {
		return nil, apiclient.ShapeError(err, ResourceToken)
	}

	token, err := payload.validate()
	if err != nil {
		service.logger.WarnContext(ctx, "login_response_invalid", slog.Any("error", err))
		return nil, err
	}

	if err := service.tokens.Save(ctx, token.AccessToken); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "login_succeeded", slog.String("token_type", token.TokenType))
	return token, nil
}

// Logout forgets the token locally. The backend is not contacted.
func (service *Service) Logout(ctx context.Context) error {
	return service.tokens.Clear(ctx)
}

// # Identity

// GetCurrentUser fetches and validates the user the token belongs to.
func (service *Service) GetCurrentUser(ctx context.Context) (*User, error) {
	var payload UserPayload
	if err := service.client.Get(ctx, PathCurrentUser, nil, &payload); err != nil {
		return nil, apiclient.ShapeError(err, ResourceUser)
	}

	return payload.Validate()
}

// IsAuthenticated reports whether a token is stored. It does not check the
// token with the backend.
func (service *Service) IsAuthenticated(ctx context.Context) bool {
	_, ok := service.tokens.Read(ctx)
	return ok
}

// # Password

/*
ChangePassword asks the backend to replace the current password.

Description: The response body is returned verbatim; unlike the other calls
it is not checked against a schema.

Parameters:
  - ctx: context.Context
  - currentPassword: string
  - newPassword: string

Returns:
  - json.RawMessage: Raw response body (may be nil for an empty body)
  - error: Pipeline errors (a 401 has already cleared the token)
*/
func (service *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) (json.RawMessage, error) {
	body := map[string]string{
		FieldCurrentPassword: currentPassword,
		FieldNewPassword:     newPassword,
	}

	var raw json.RawMessage
	if err := service.client.PostJSON(ctx, PathChangePassword, body, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// # Input Rules

// ValidateLogin checks login form input before it is sent.
func ValidateLogin(email, password string) error {
	return (&validate.Validator{}).
		Email(FieldEmail, email).
		MinLen(FieldPassword, password, MinPasswordLength).
		Err()
}

// ValidatePasswordChange checks the password change form.
func ValidatePasswordChange(currentPassword, newPassword, confirmPassword string) error {
	return (&validate.Validator{}).
		Required(FieldCurrentPassword, currentPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLength).
		Custom(FieldConfirmPassword, newPassword != confirmPassword, "Passwords don't match").
		Err()
}
