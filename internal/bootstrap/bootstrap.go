// Package bootstrap assembles the application service from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-manager/internal/ai"
	"inventory-manager/internal/app"
	"inventory-manager/internal/config"
	"inventory-manager/internal/core"
	"inventory-manager/internal/db"
	"inventory-manager/internal/persistence"
)

// Runtime is a wired application service and the resources behind it.
type Runtime struct {
	Service app.ApplicationService
	Backend persistence.Backend
	close   func()
}

// Close releases the database pool, if any.
func (r *Runtime) Close() {
	if r.close != nil {
		r.close()
	}
}

// Build selects the persistence backend and optional interpreter from cfg.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Runtime, error) {
	if log == nil {
		log = zap.NewNop()
	}

	rt := &Runtime{}
	opts := app.Options{
		DataFile:          cfg.DataFile,
		LowStockThreshold: cfg.LowStockThreshold,
		Logger:            log,
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		rt.Backend = persistence.NewPostgresBackend(pool)
		rt.close = pool.Close
	default:
		rt.Backend = persistence.NewFileBackend()
		opts.NormalizeTarget = persistence.NormalizeTarget
	}

	if cfg.AgentEnabled() {
		opts.Agent = ai.NewAgent(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Debug("OPENAI_API_KEY not set, command interpreter disabled")
	}

	rt.Service = app.NewAppService(core.NewStore(), rt.Backend, opts)
	log.Debug("runtime ready", zap.String("backend", cfg.Backend), zap.String("data_file", cfg.DataFile))
	return rt, nil
}
