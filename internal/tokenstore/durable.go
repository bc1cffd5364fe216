// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"errors"
	"sync"

	"github.com/taibuivan/backoffice/internal/platform/constants"
)

// ErrNotFound is returned by a [KV] when the key is absent.
var ErrNotFound = errors.New("tokenstore: key not found")

// KV is the persistent key/value contract behind [Durable].
// Values never expire.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Durable stores the token under a fixed key in a [KV].
type Durable struct {
	kv  KV
	key string
}

// NewDurable creates a Durable backend keyed by [constants.AccessTokenKey].
func NewDurable(kv KV) *Durable {
	return &Durable{kv: kv, key: constants.AccessTokenKey}
}

// Save implements [Backend].
func (d *Durable) Save(ctx context.Context, token string) error {
	return d.kv.Set(ctx, d.key, token)
}

// Read implements [Backend].
func (d *Durable) Read(ctx context.Context) (string, error) {
	value, err := d.kv.Get(ctx, d.key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return value, err
}

// Clear implements [Backend].
func (d *Durable) Clear(ctx context.Context) error {
	return d.kv.Delete(ctx, d.key)
}

// # In-Memory KV

// MemoryKV is a process-local [KV] for tests and STORAGE_DRIVER=memory.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements [KV].
func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set implements [KV].
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete implements [KV].
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
