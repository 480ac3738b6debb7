// Package config loads application settings from the environment, an
// optional inventory.yaml file and built-in defaults.
package config

import (
	"net"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// DataFile is the default save/load target for the file backend, or the
	// snapshot name for the postgres backend.
	DataFile          string   `mapstructure:"data_file" validate:"required"`
	Backend           string   `mapstructure:"backend" validate:"required,oneof=file postgres"`
	DatabaseURL       string   `mapstructure:"database_url" validate:"required_if=Backend postgres"`
	LowStockThreshold int      `mapstructure:"low_stock_threshold" validate:"gte=0"`
	CurrencySymbol    string   `mapstructure:"currency_symbol"`
	LogLevel          string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFile           string   `mapstructure:"log_file"`
	ServerHost        string   `mapstructure:"server_host" validate:"required"`
	ServerPort        int      `mapstructure:"server_port" validate:"required,gt=0,lt=65536"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
	OpenAIAPIKey      string   `mapstructure:"openai_api_key"`
	OpenAIModel       string   `mapstructure:"openai_model"`
}

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// AgentEnabled reports whether the natural-language interpreter can be used.
func (c *Config) AgentEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// ServerAddr is the listen address of the HTTP server.
func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}
