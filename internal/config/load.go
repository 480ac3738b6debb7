package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. INVENTORY_DATA_FILE.
const EnvPrefix = "INVENTORY"

var defaults = map[string]any{
	"data_file":           "inventory.inv",
	"backend":             BackendFile,
	"database_url":        "",
	"low_stock_threshold": 10,
	"currency_symbol":     "$",
	"log_level":           "warn",
	"log_file":            "",
	"server_host":         "127.0.0.1",
	"server_port":         8080,
	"allowed_origins":     []string{"http://localhost:8080"},
	"openai_api_key":      "",
	"openai_model":        "",
}

// Load reads configuration. Environment variables take precedence over the
// config file, which takes precedence over defaults. configFile may be empty,
// in which case ./inventory.yaml is used when present.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("inventory")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed names are honoured as fallbacks.
	if err := v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database_url: %w", err)
	}
	if err := v.BindEnv("openai_api_key", EnvPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind openai_api_key: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
