// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/backoffice/internal/platform/constants"
)

// # User-Facing Messages

const (
	MsgForbidden    = "You do not have permission to perform this action"
	MsgServerError  = "Server error. Please try again later."
	MsgValidation   = "Validation error"
	MsgGenericError = "An error occurred"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Error(message string)
	Success(message string)
}

// Navigator moves the user between pages.
type Navigator interface {
	// Current returns the path of the page being shown.
	Current() string
	// Navigate switches pages within the running session.
	Navigate(path string)
	// ForceNavigate abandons in-flight page work and reloads at path.
	ForceNavigate(path string)
}

// TokenClearer removes the stored credential.
type TokenClearer interface {
	Clear(ctx context.Context) error
}

// ErrorHandler runs side effects for a failed request. It is called exactly
// once per failure; the error is returned to the caller afterwards.
type ErrorHandler interface {
	Handle(ctx context.Context, err error)
}

// ErrorHandlerFunc adapts a function to [ErrorHandler].
type ErrorHandlerFunc func(ctx context.Context, err error)

// Handle implements [ErrorHandler].
func (f ErrorHandlerFunc) Handle(ctx context.Context, err error) { f(ctx, err) }

// DefaultErrorHandler applies the status-based policy:
//
//   - 401 clears the credential and forces a reload at the login page
//   - 403 and 500 show fixed messages
//   - 422 is left to the caller
//   - anything else shows the server's detail or a generic message
type DefaultErrorHandler struct {
	Tokens    TokenClearer
	Navigator Navigator
	Notifier  Notifier
	Logger    *slog.Logger
}

// Handle implements [ErrorHandler].
func (h *DefaultErrorHandler) Handle(ctx context.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		h.Notifier.Error(MsgGenericError)
		return
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		if clearErr := h.Tokens.Clear(ctx); clearErr != nil {
			h.Logger.WarnContext(ctx, "token_clear_failed", slog.Any("error", clearErr))
		}
		if h.Navigator.Current() != constants.RouteLogin {
			h.Navigator.ForceNavigate(constants.RouteLogin)
		}

	case http.StatusForbidden:
		h.Notifier.Error(MsgForbidden)

	case http.StatusInternalServerError:
		h.Notifier.Error(MsgServerError)

	case http.StatusUnprocessableEntity:
		// Field errors are rendered by the form that sent the request.

	default:
		h.Notifier.Error(detailMessage(apiErr.Detail))
	}
}

func detailMessage(detail *ErrorDetail) string {
	switch {
	case detail == nil:
		return MsgGenericError
	case detail.IsList():
		return MsgValidation
	default:
		return detail.Message
	}
}
