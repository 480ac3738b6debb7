package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const migrationLockID = 7462839

// ErrMigrationLocked is returned when another migrator holds the advisory lock.
var ErrMigrationLocked = errors.New("another migrator is currently running")

// Migrate applies every NNN_description.sql file in dir that has not been
// applied yet, in version order. Applied files are tracked in schema_migrations
// by checksum; an edited, already-applied file is an error.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for lock: %w", err)
	}
	defer conn.Release()

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", migrationLockID).Scan(&locked); err != nil {
		return fmt.Errorf("failed to query advisory lock: %w", err)
	}
	if !locked {
		return ErrMigrationLocked
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", migrationLockID)
	}()

	if _, err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	files, err := discoverMigrations(dir)
	if err != nil {
		return err
	}
	for _, filename := range files {
		if err := applyMigration(ctx, conn.Conn(), dir, filename, log); err != nil {
			return err
		}
	}
	return nil
}

func discoverMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var filenames []string
	versions := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, err := migrationVersion(entry.Name())
		if err != nil {
			return nil, err
		}
		if versions[version] {
			return nil, fmt.Errorf("duplicate migration version %s", version)
		}
		versions[version] = true
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)
	return filenames, nil
}

func migrationVersion(filename string) (string, error) {
	parts := strings.SplitN(filename, "_", 2)
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("invalid migration filename %s: expected NNN_description.sql", filename)
	}
	return parts[0], nil
}

func applyMigration(ctx context.Context, conn *pgx.Conn, dir, filename string, log *zap.Logger) error {
	version, err := migrationVersion(filename)
	if err != nil {
		return err
	}
	sqlBytes, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", filename, err)
	}
	sum := sha256.Sum256(sqlBytes)
	checksum := hex.EncodeToString(sum[:])

	var existing string
	err = conn.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", version).Scan(&existing)
	switch {
	case err == nil:
		if existing != checksum {
			return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", filename, existing, checksum)
		}
		log.Debug("migration already applied", zap.String("file", filename))
		return nil
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return fmt.Errorf("failed to query schema_migrations for %s: %w", filename, err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", filename, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", filename, err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, filename, checksum) VALUES ($1, $2, $3)", version, filename, checksum); err != nil {
		return fmt.Errorf("failed to insert migration record for %s: %w", filename, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for %s: %w", filename, err)
	}

	log.Info("migration applied", zap.String("file", filename))
	return nil
}
