package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-manager/internal/core"
)

// PostgresBackend stores each snapshot as a row in inventory_snapshots plus
// its items in inventory_snapshot_items. Targets are snapshot names.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

// Save replaces the named snapshot in a single transaction.
func (b *PostgresBackend) Save(ctx context.Context, name string, items []core.Item) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty snapshot name", ErrWrite)
	}

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrWrite, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_snapshots (name, saved_at) VALUES ($1, now())
		ON CONFLICT (name) DO UPDATE SET saved_at = EXCLUDED.saved_at`, name)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert snapshot: %v", ErrWrite, err)
	}

	if _, err = tx.Exec(ctx, "DELETE FROM inventory_snapshot_items WHERE snapshot_name = $1", name); err != nil {
		return fmt.Errorf("%w: failed to clear snapshot items: %v", ErrWrite, err)
	}

	rows := make([][]any, len(items))
	for i, it := range items {
		rows[i] = []any{name, i, it.Name, it.Quantity, it.Price}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"inventory_snapshot_items"},
		[]string{"snapshot_name", "position", "name", "quantity", "price"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to copy snapshot items: %v", ErrWrite, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit snapshot: %v", ErrWrite, err)
	}
	return nil
}

// Load returns the items of the named snapshot in the order they were saved.
func (b *PostgresBackend) Load(ctx context.Context, name string) ([]core.Item, error) {
	name = strings.TrimSpace(name)

	var exists bool
	err := b.pool.QueryRow(ctx, "SELECT true FROM inventory_snapshots WHERE name = $1", name).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up snapshot %s: %w", name, err)
	}

	rows, err := b.pool.Query(ctx, `
		SELECT name, quantity, price
		FROM inventory_snapshot_items
		WHERE snapshot_name = $1
		ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot items: %w", err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var r record
		if err := rows.Scan(&r.Name, &r.Quantity, &r.Price); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot items: %w", err)
	}
	return toItems(records)
}

// ListSnapshots returns saved snapshot names, newest first.
func (b *PostgresBackend) ListSnapshots(ctx context.Context) ([]string, error) {
	rows, err := b.pool.Query(ctx, "SELECT name FROM inventory_snapshots ORDER BY saved_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
