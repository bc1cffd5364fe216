// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the API client, storage and servers via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/backoffice/internal/platform/constants"
)

// # Storage Drivers

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the console and the edge server.
type Config struct {

	// Backend origin. The versioned API prefix is appended by the client.
	APIURL string `env:"PUBLIC_API_URL" envDefault:"http://localhost:8000"`

	// Runtime mode
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Edge server
	WebPort string `env:"WEB_PORT" envDefault:"3000"`

	// Durable token storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	StoragePath   string `env:"STORAGE_PATH"   envDefault:"console.db"`
	RedisURL      string `env:"REDIS_URL"`

	// Cookie persistence for the console
	CookieJarPath string `env:"COOKIE_JAR_PATH" envDefault:"console.cookies.json"`

	// RequestTimeout bounds every backend call. Zero means no timeout.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"0s"`

	// Console log destination
	LogFile string `env:"LOG_FILE" envDefault:"console.log"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field rules that struct tags cannot express.
func (c *Config) validate() error {
	if _, err := c.Origin(); err != nil {
		return err
	}

	switch c.StorageDriver {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when STORAGE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must not be negative")
	}

	return nil
}

// Origin returns the parsed backend origin without a trailing slash.
func (c *Config) Origin() (*url.URL, error) {
	raw := strings.TrimRight(c.APIURL, "/")
	if raw == "" {
		raw = constants.DefaultAPIOrigin
	}

	origin, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("config: invalid PUBLIC_API_URL: %w", err)
	}
	if origin.Scheme != "http" && origin.Scheme != "https" {
		return nil, fmt.Errorf("config: PUBLIC_API_URL must be http(s), got %q", c.APIURL)
	}
	if origin.Host == "" {
		return nil, fmt.Errorf("config: PUBLIC_API_URL has no host")
	}

	return origin, nil
}

// APIBaseURL returns the origin joined with the fixed API prefix.
func (c *Config) APIBaseURL() string {
	origin, err := c.Origin()
	if err != nil {
		return constants.DefaultAPIOrigin + constants.APIPrefix
	}
	return origin.String() + constants.APIPrefix
}

// IsDevelopment reports whether the process is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the process is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
