package persistence_test

import (
	"context"
	"errors"
	"math"
	"os"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"inventory-manager/internal/core"
	"inventory-manager/internal/db"
	"inventory-manager/internal/persistence"
)

func setupTestDB(t *testing.T) (*pgxpool.Pool, context.Context) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Integration tests run against a dedicated database only.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, "../../migrations", nil); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE TABLE inventory_snapshot_items, inventory_snapshots CASCADE"); err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}
	return pool, ctx
}

func TestPostgresBackend_RoundTrip(t *testing.T) {
	pool, ctx := setupTestDB(t)
	b := persistence.NewPostgresBackend(pool)

	items := []core.Item{
		{Name: "Widget", Quantity: 8, Price: 3},
		{Name: "Bolt", Quantity: 0, Price: 0.02},
	}
	if err := b.Save(ctx, "main", items); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := b.Load(ctx, "main")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("want %+v, got %+v", items, got)
	}
}

func TestPostgresBackend_LargeQuantity(t *testing.T) {
	pool, ctx := setupTestDB(t)
	b := persistence.NewPostgresBackend(pool)

	items := []core.Item{{Name: "Rivet", Quantity: math.MaxInt32 + 10, Price: 0}}
	if err := b.Save(ctx, "bulk", items); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := b.Load(ctx, "bulk")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("want %+v, got %+v", items, got)
	}
}

func TestPostgresBackend_SaveReplacesSnapshot(t *testing.T) {
	pool, ctx := setupTestDB(t)
	b := persistence.NewPostgresBackend(pool)

	if err := b.Save(ctx, "main", []core.Item{{Name: "A", Quantity: 1, Price: 1}, {Name: "B", Quantity: 2, Price: 2}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := b.Save(ctx, "main", []core.Item{{Name: "C", Quantity: 3, Price: 3}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := b.Load(ctx, "main")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "C" {
		t.Errorf("expected only C, got %+v", got)
	}

	names, err := b.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(names) != 1 || names[0] != "main" {
		t.Errorf("expected one snapshot, got %v", names)
	}
}

func TestPostgresBackend_EmptySnapshot(t *testing.T) {
	pool, ctx := setupTestDB(t)
	b := persistence.NewPostgresBackend(pool)

	if err := b.Save(ctx, "empty", nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := b.Load(ctx, "empty")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no items, got %+v", got)
	}
}

func TestPostgresBackend_LoadUnknownSnapshot(t *testing.T) {
	pool, ctx := setupTestDB(t)
	_, err := persistence.NewPostgresBackend(pool).Load(ctx, "ghost")
	if !errors.Is(err, persistence.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}
