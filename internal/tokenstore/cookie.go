// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/taibuivan/backoffice/internal/platform/constants"
)

// cookieRecord is the on-disk form of the token cookie.
type cookieRecord struct {
	Value   string    `json:"value"`
	Expires time.Time `json:"expires"`
}

// Cookie stores the token as an expiring cookie in an [http.CookieJar]
// scoped to the backend origin.
//
// The jar is meant to be shared with the API client's [http.Client] so the
// cookie also travels with every backend request.
type Cookie struct {
	mu      sync.Mutex
	jar     http.CookieJar
	origin  *url.URL
	path    string
	now     func() time.Time
	expires time.Time
}

// CookieOption customizes a [Cookie].
type CookieOption func(*Cookie)

// WithPersistPath persists the cookie to a JSON file so it survives a restart.
func WithPersistPath(path string) CookieOption {
	return func(c *Cookie) { c.path = path }
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) CookieOption {
	return func(c *Cookie) { c.now = now }
}

// NewCookieJar creates a jar that follows public-suffix domain rules.
func NewCookieJar() (http.CookieJar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// NewCookie creates a Cookie backend on jar for origin and reloads any
// persisted cookie that has not yet expired.
func NewCookie(jar http.CookieJar, origin *url.URL, opts ...CookieOption) (*Cookie, error) {
	c := &Cookie{jar: jar, origin: origin, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.load(); err != nil {
		return nil, err
	}

	return c, nil
}

// Jar returns the underlying cookie jar.
func (c *Cookie) Jar() http.CookieJar { return c.jar }

// Save implements [Backend]. The cookie expires [constants.AccessTokenCookieTTL]
// after now.
func (c *Cookie) Save(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(constants.AccessTokenCookieTTL)
	c.set(token, expires)

	return c.persist(cookieRecord{Value: token, Expires: expires})
}

// Read implements [Backend]. An expired cookie reads as absent.
func (c *Cookie) Read(_ context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.expires.IsZero() && !c.now().Before(c.expires) {
		c.drop()
		return "", nil
	}

	for _, cookie := range c.jar.Cookies(c.origin) {
		if cookie.Name == constants.AccessTokenKey {
			return cookie.Value, nil
		}
	}

	return "", nil
}

// Clear implements [Backend].
func (c *Cookie) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drop()

	if c.path == "" {
		return nil
	}
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cookie_jar_remove_failed: %w", err)
	}
	return nil
}

func (c *Cookie) set(value string, expires time.Time) {
	c.jar.SetCookies(c.origin, []*http.Cookie{{
		Name:     constants.AccessTokenKey,
		Value:    value,
		Path:     constants.AccessTokenCookiePath,
		Expires:  expires,
		Secure:   c.origin.Scheme == "https",
		SameSite: http.SameSiteLaxMode,
	}})
	c.expires = expires
}

func (c *Cookie) drop() {
	c.jar.SetCookies(c.origin, []*http.Cookie{{
		Name:   constants.AccessTokenKey,
		Path:   constants.AccessTokenCookiePath,
		MaxAge: -1,
	}})
	c.expires = time.Time{}
}

func (c *Cookie) load() error {
	if c.path == "" {
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cookie_jar_read_failed: %w", err)
	}

	var record cookieRecord
	if err := json.Unmarshal(data, &record); err != nil {
		// A corrupt file is treated as no cookie.
		return nil
	}

	if record.Value == "" || !c.now().Before(record.Expires) {
		return nil
	}

	c.set(record.Value, record.Expires)
	return nil
}

func (c *Cookie) persist(record cookieRecord) error {
	if c.path == "" {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("cookie_jar_encode_failed: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("cookie_jar_write_failed: %w", err)
	}
	return nil
}
