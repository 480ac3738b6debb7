// Package logger builds the application's zap logger.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level and destination of log output.
type Config struct {
	Level string
	// File receives logs in addition to stderr when set.
	File string
	// Quiet sends logs only to File (or nowhere), keeping the terminal clear
	// for interactive adapters.
	Quiet bool
}

// New returns a production JSON logger at the configured level.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var outputs []string
	if !cfg.Quiet {
		outputs = append(outputs, "stderr")
	}
	if cfg.File != "" {
		outputs = append(outputs, cfg.File)
	}
	if len(outputs) == 0 {
		return zap.NewNop(), nil
	}
	zc.OutputPaths = outputs
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a config level name to a zap level. Blank means warn.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "", "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}
