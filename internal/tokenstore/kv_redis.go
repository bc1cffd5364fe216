// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/backoffice/internal/platform/constants"
)

// RedisCommander is the subset of [*redis.Client] used by [RedisKV].
type RedisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisKV implements [KV] on a shared Redis, namespaced by
// [constants.RedisPrefixStorage]. Keys carry no TTL.
type RedisKV struct {
	client RedisCommander
}

// NewRedisKV creates a Redis-backed KV.
func NewRedisKV(client RedisCommander) *RedisKV {
	return &RedisKV{client: client}
}

/*
Get retrieves the value stored under key.

Returns:
  - string: Stored value
  - error: [ErrNotFound] if absent, or connectivity errors
*/
func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, constants.RedisPrefixStorage+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis_storage_get_failed: %w", err)
	}
	return value, nil
}

// Set implements [KV].
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, constants.RedisPrefixStorage+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis_storage_set_failed: %w", err)
	}
	return nil
}

// Delete implements [KV].
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, constants.RedisPrefixStorage+key).Err(); err != nil {
		return fmt.Errorf("redis_storage_delete_failed: %w", err)
	}
	return nil
}
