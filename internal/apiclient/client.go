// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the single HTTP pipeline between the console and the
backend REST API.

Every call goes through a [Middleware] chain:

	BearerAuth -> Dispatch -> *http.Client

BearerAuth reads the token store on each request. Dispatch converts non-2xx
responses into [*APIError] and network failures into [*TransportError], runs
the [ErrorHandler] once, and returns the error to the caller unchanged.

Usage:

	client := apiclient.New(cfg.APIBaseURL(), httpClient, tokens, handler, logger)
	user, err := apiclient.Call[auth.User](ctx, client, apiclient.Request{
	    Method: http.MethodGet,
	    Path:   "/users/me",
	})
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/backoffice/internal/platform/constants"
)

// Request describes one backend call. At most one of JSON or Form is set.
type Request struct {
	Method string
	// Path is relative to the API base URL, e.g. "/items/123".
	Path  string
	Query url.Values
	JSON  any
	Form  url.Values
}

// Client sends requests to the backend through the middleware chain.
type Client struct {
	baseURL string
	doer    Doer
}

// New builds a Client with the standard chain around httpClient.
func New(baseURL string, httpClient *http.Client, tokens TokenReader, handler ErrorHandler, logger *slog.Logger) *Client {
	return NewWithDoer(baseURL, Chain(httpClient,
		BearerAuth(tokens),
		Dispatch(handler, logger),
	))
}

// NewWithDoer builds a Client over an already assembled chain.
func NewWithDoer(baseURL string, doer Doer) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), doer: doer}
}

// BaseURL returns the absolute API prefix requests are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Send performs req and decodes a 2xx body into out (if out is non-nil).
func (c *Client) Send(ctx context.Context, req Request, out any) error {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return err
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return DecodeJSON(resp, out)
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = constants.ContentTypeForm
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s %s: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(payload)
		contentType = constants.ContentTypeJSON
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build %s %s: %w", req.Method, req.Path, err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	if contentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, contentType)
	}

	return httpReq, nil
}

// # Verb Helpers

// Get sends a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Send(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// PostJSON sends a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.Send(ctx, Request{Method: http.MethodPost, Path: path, JSON: body}, out)
}

// PostForm sends a POST with a form-encoded body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.Send(ctx, Request{Method: http.MethodPost, Path: path, Form: form}, out)
}

// Patch sends a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Send(ctx, Request{Method: http.MethodPatch, Path: path, JSON: body}, out)
}

// Delete sends a DELETE and discards the response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Send(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

// Call sends req and decodes the response into a new T.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	err := c.Send(ctx, req, &out)
	return out, err
}

// DecodeJSON decodes resp's body into out. A nil out or an empty body is
// not an error. A *json.RawMessage out receives the bytes unparsed.
func DecodeJSON(resp *http.Response, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("apiclient: read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	// Raw targets receive the body verbatim, even when it is not JSON.
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
