// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taibuivan/backoffice/internal/platform/apperr"
)

// # Error Body

// ValidationIssue is one entry of a list-shaped error detail.
type ValidationIssue struct {
	// Loc is the path to the offending field; entries are strings or numbers.
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Path joins Loc with dots, e.g. "body.email".
func (v ValidationIssue) Path() string {
	parts := make([]string, 0, len(v.Loc))
	for _, segment := range v.Loc {
		switch s := segment.(type) {
		case string:
			parts = append(parts, s)
		case float64:
			parts = append(parts, strconv.FormatFloat(s, 'f', -1, 64))
		case json.Number:
			parts = append(parts, s.String())
		}
	}
	return strings.Join(parts, ".")
}

// ErrorDetail is the parsed `detail` member of an error body.
// Exactly one of Message or Issues is meaningful, as reported by IsList.
type ErrorDetail struct {
	Message string
	Issues  []ValidationIssue
	isList  bool
}

// IsList reports whether the detail was a list of validation issues.
func (d *ErrorDetail) IsList() bool { return d.isList }

// ParseErrorBody parses `{"detail": string | [{loc, msg, type}]}`.
// It returns nil when body does not match that shape.
func ParseErrorBody(body []byte) *ErrorDetail {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return nil
	}

	raw := bytes.TrimSpace(envelope.Detail)
	switch {
	case len(raw) > 0 && raw[0] == '"':
		var message string
		if err := json.Unmarshal(raw, &message); err != nil {
			return nil
		}
		return &ErrorDetail{Message: message}

	case len(raw) > 0 && raw[0] == '[':
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		issues := make([]ValidationIssue, 0, len(items))
		for _, item := range items {
			issue, ok := parseIssue(item)
			if !ok {
				return nil
			}
			issues = append(issues, issue)
		}
		return &ErrorDetail{Issues: issues, isList: true}
	}

	return nil
}

func parseIssue(item map[string]json.RawMessage) (ValidationIssue, bool) {
	var issue ValidationIssue

	if err := json.Unmarshal(item["msg"], &issue.Msg); err != nil || !isJSONString(item["msg"]) {
		return issue, false
	}
	if err := json.Unmarshal(item["type"], &issue.Type); err != nil || !isJSONString(item["type"]) {
		return issue, false
	}

	rawLoc := bytes.TrimSpace(item["loc"])
	if len(rawLoc) == 0 || rawLoc[0] != '[' {
		return issue, false
	}
	var loc []json.RawMessage
	if err := json.Unmarshal(rawLoc, &loc); err != nil {
		return issue, false
	}
	issue.Loc = make([]any, 0, len(loc))
	for _, segment := range loc {
		var value any
		if err := json.Unmarshal(segment, &value); err != nil {
			return issue, false
		}
		switch value.(type) {
		case string, float64:
			issue.Loc = append(issue.Loc, value)
		default:
			return issue, false
		}
	}

	return issue, true
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

// # Typed Errors

// APIError is a completed response with a non-2xx status.
type APIError struct {
	Status int
	Method string
	Path   string
	Body   []byte
	// Detail is nil when Body did not match the error body shape.
	Detail *ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: request failed with status code %d", e.Method, e.Path, e.Status)
}

// TransportError is a request that never produced a response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is a 2xx body that could not be decoded as JSON into the
// expected type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "apiclient: decode response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// ShapeError reports a [*DecodeError] as an INVALID_RESPONSE
// [apperr.AppError] for resource. Other errors are returned unchanged.
func ShapeError(err error, resource string) error {
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		return err
	}
	appErr := apperr.InvalidResponse(resource, apperr.FieldError{Field: "body", Message: decodeErr.Err.Error()})
	appErr.Cause = decodeErr
	return appErr
}

// StatusOf returns the HTTP status carried by err, or 0 if none.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ErrorMessage renders err as a single user-facing line.
//
// A string detail is returned as is; list details and response-shape
// failures become "path: message" pairs joined by ", ".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != nil {
		if !apiErr.Detail.IsList() {
			return apiErr.Detail.Message
		}
		if len(apiErr.Detail.Issues) > 0 {
			parts := make([]string, 0, len(apiErr.Detail.Issues))
			for _, issue := range apiErr.Detail.Issues {
				parts = append(parts, issue.Path()+": "+issue.Msg)
			}
			return strings.Join(parts, ", ")
		}
	}

	if appErr := apperr.As(err); appErr != nil && len(appErr.Details) > 0 {
		return appErr.DetailString()
	}

	return err.Error()
}
