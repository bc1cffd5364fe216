// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteKV implements [KV] over the migrated `storage` table.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV creates a SQLite-backed KV. The schema must already exist.
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get implements [KV].
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("sqlite_storage_get_failed: %w", err)
	}

	return value, nil
}

// Set implements [KV].
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("sqlite_storage_set_failed: %w", err)
	}
	return nil
}

// Delete implements [KV].
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite_storage_delete_failed: %w", err)
	}
	return nil
}
