// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized application error type for Backoffice.

It serves two sides of the system:

  - The edge server, where an [AppError] is rendered as a JSON error envelope
    with its HTTPStatus.
  - The console, where an [AppError] reports input that failed validation
    before a request was sent, or a backend response whose shape did not
    match the expected schema.

Errors coming back from the backend itself (HTTP statuses, transport
failures) are typed in the apiclient package; this package is for failures
the application detects on its own.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// # Error Codes

const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidResponse = "INVALID_RESPONSE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeBadGateway      = "BAD_GATEWAY"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError is the canonical error type for Backoffice.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for logging only and is never sent to clients.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code used by the edge server.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field failures for VALIDATION_ERROR and INVALID_RESPONSE.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// DetailString joins the field failures as "field: message" pairs.
func (e *AppError) DetailString() string {
	parts := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		parts = append(parts, detail.Field+": "+detail.Message)
	}
	return strings.Join(parts, ", ")
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Page") // Returns "Page not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// InvalidResponse reports a 2xx backend body that does not match the
// expected schema for resource. It is never recovered automatically.
func InvalidResponse(resource string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeInvalidResponse,
		Message:    "Unexpected " + resource + " response from server",
		HTTPStatus: http.StatusBadGateway,
		Details:    details,
	}
}

// BadGateway creates a 502 [AppError] for an unreachable upstream.
func BadGateway(cause error) *AppError {
	return &AppError{
		Code:       CodeBadGateway,
		Message:    "Upstream service unavailable",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
