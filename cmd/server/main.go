package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	webAdapter "inventory-manager/internal/adapters/web"
	"inventory-manager/internal/bootstrap"
	"inventory-manager/internal/config"
	"inventory-manager/internal/persistence"
	"inventory-manager/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("INVENTORY_CONFIG"))
	if err != nil {
		// No logger yet.
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer rt.Close()

	if res, err := rt.Service.Load(ctx, ""); err == nil {
		log.Info("inventory loaded", zap.String("target", res.Target), zap.Int("items", res.ItemCount))
	} else if !errors.Is(err, persistence.ErrSnapshotNotFound) {
		log.Fatal("failed to load inventory", zap.Error(err))
	}

	if !cfg.AgentEnabled() {
		log.Warn("OPENAI_API_KEY is not set, /api/ask is disabled")
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           webAdapter.NewHandler(ctx, rt.Service, log, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server starting", zap.String("addr", srv.Addr), zap.String("backend", cfg.Backend))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}

	if st, err := rt.Service.Status(context.Background()); err == nil && st.Dirty {
		log.Warn("server stopped with unsaved changes", zap.Int("items", st.ItemCount))
	}
	log.Info("server stopped")
}
