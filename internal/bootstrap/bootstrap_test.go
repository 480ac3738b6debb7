package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-manager/internal/app"
	"inventory-manager/internal/bootstrap"
	"inventory-manager/internal/config"
	"inventory-manager/internal/persistence"
)

func TestBuild_FileBackend(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "stock")
	cfg := &config.Config{DataFile: dataFile, Backend: config.BackendFile, LowStockThreshold: 3}

	rt, err := bootstrap.Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer rt.Close()

	assert.IsType(t, &persistence.FileBackend{}, rt.Backend)

	ctx := context.Background()
	status, err := rt.Service.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.AgentEnabled)

	_, err = rt.Service.AddItem(ctx, app.AddItemRequest{Name: "Widget", Quantity: 2, Price: 1})
	require.NoError(t, err)
	low, err := rt.Service.LowStockReport(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, 3, low.Threshold)

	saved, err := rt.Service.Save(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, dataFile+".inv", saved.Target)
	assert.FileExists(t, dataFile+".inv")
}

func TestBuild_AgentEnabledWithKey(t *testing.T) {
	cfg := &config.Config{DataFile: "x.inv", Backend: config.BackendFile, OpenAIAPIKey: "sk-test"}

	rt, err := bootstrap.Build(context.Background(), cfg, nil)
	require.NoError(t, err)

	status, err := rt.Service.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.AgentEnabled)
}

func TestBuild_PostgresWithoutURL(t *testing.T) {
	cfg := &config.Config{DataFile: "main", Backend: config.BackendPostgres}

	_, err := bootstrap.Build(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "database URL not set")
}
