package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_items.sql", "001_init.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := discoverMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_items.sql"}, files)
}

func TestDiscoverMigrations_Errors(t *testing.T) {
	t.Run("duplicate version", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"001_a.sql", "001_b.sql"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}
		_, err := discoverMigrations(dir)
		assert.ErrorContains(t, err, "duplicate migration version 001")
	})

	t.Run("bad filename", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "init.sql"), nil, 0o644))
		_, err := discoverMigrations(dir)
		assert.ErrorContains(t, err, "invalid migration filename")
	})

	t.Run("missing dir", func(t *testing.T) {
		_, err := discoverMigrations(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestShippedMigrationsAreDiscoverable(t *testing.T) {
	files, err := discoverMigrations("../../migrations")
	require.NoError(t, err)
	assert.Contains(t, files, "001_inventory_snapshots.sql")
	assert.Contains(t, files, "002_snapshot_item_quantity_bigint.sql")
}
