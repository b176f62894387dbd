// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"PORT" envDefault:"8080"`

	// StoreDriver selects the persistence backend: "json" or "sqlite".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"json"`

	// DataDir is where the state file or database lives.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is "text" (colored, for terminals) or "json".
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StoreDriver != "json" && cfg.StoreDriver != "sqlite" {
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return cfg, nil
}
