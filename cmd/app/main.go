package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"inventory-manager/internal/adapters/cli"
	"inventory-manager/internal/bootstrap"
	"inventory-manager/internal/config"
	"inventory-manager/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand(build)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// build loads configuration and wires the service for one command invocation.
func build(ctx context.Context, flags cli.GlobalFlags) (*cli.Env, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if flags.DataFile != "" {
		cfg.DataFile = flags.DataFile
	}

	// Terminal adapters own stdout/stderr; logs only go to log_file.
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, Quiet: true})
	if err != nil {
		return nil, err
	}

	rt, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	return &cli.Env{
		Service:  rt.Service,
		Currency: cfg.CurrencySymbol,
		Backend:  rt.Backend,
		Close: func() {
			rt.Close()
			_ = log.Sync()
		},
	}, nil
}
