// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/backoffice/internal/platform/migration"
	"github.com/taibuivan/backoffice/internal/platform/sqlite"
)

func TestRunUp_CreatesStorageTable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "console.db")

	require.NoError(t, migration.RunUp(path, logger))

	// Second run is a no-op.
	require.NoError(t, migration.RunUp(path, logger))

	db, err := sqlite.Open(context.Background(), path, logger)
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'storage'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
