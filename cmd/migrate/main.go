// migrate applies the SQL files in migrations/ to the configured database.
//
// Usage: go run ./cmd/migrate [-dir migrations]
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"inventory-manager/internal/config"
	"inventory-manager/internal/db"
	"inventory-manager/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "migrations", "directory of NNN_description.sql files")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info"})
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(os.Getenv("INVENTORY_CONFIG"))
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, *dir, log); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	log.Info("all migrations processed")
}
