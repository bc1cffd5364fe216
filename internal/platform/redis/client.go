// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the console to a shared Redis for durable storage.

With STORAGE_DRIVER=redis several console instances on one host see the
same credential. The durable token store writes its keys without a TTL, so
nothing here configures expiry.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// A console sends a few commands per user action and waits on each one.
const (
	poolSize     = 2
	minIdleConns = 1
	dialTimeout  = 3 * time.Second
	ioTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

/*
NewClient connects to the Redis at redisURL and checks it with a ping.

Parameters:
  - context: bounds the initial ping
  - redisURL: redis:// or rediss:// URL; a password or DB in the URL is honored
  - logger: connection events

Returns:
  - *redis.Client: a connected client; the caller closes it
  - error: an unparsable URL or a failed ping
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid REDIS_URL: %w", err)
	}
	tune(options)

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: %s unreachable: %w", options.Addr, err)
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Bool("tls", options.TLSConfig != nil),
	)
	return client, nil
}

// tune sizes the pool for a single interactive user.
func tune(options *redis.Options) {
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout
}

// Ping checks the connection within pingTimeout.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
