// Package config loads engine sizing and logging settings from the
// environment, with an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envVarPrefix = "memfs"

type Config struct {
	Blocks   uint64 `envconfig:"MEMFS_BLOCKS" default:"10000"`
	Inodes   uint64 `envconfig:"MEMFS_INODES" default:"10000"`
	LogLevel string `envconfig:"MEMFS_LOG_LEVEL" default:"info"`
}

// Load reads envFile (if non-empty) into the process environment and then
// populates the config from it. Explicit environment variables win over the
// file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("reading env file: %w", err)
		}
	}

	var c Config
	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the sizing bounds; callers that override fields after
// Load should re-validate.
func (c *Config) Validate() error {
	if c.Blocks < 2 {
		return fmt.Errorf("MEMFS_BLOCKS must be at least 2, got %d", c.Blocks)
	}
	if c.Inodes < 1 {
		return fmt.Errorf("MEMFS_INODES must be at least 1, got %d", c.Inodes)
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog level; unknown
// names fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
