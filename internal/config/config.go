// Package config loads and validates the connector recipe.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"corpsync/internal/domain"
)

// SourceConfig locates the BI principal export to ingest.
type SourceConfig struct {
	UsersFile string `yaml:"users_file"`
}

// GraphAPIConfig holds the metadata graph connection. When Server is empty
// the run has no graph access and existence checks are unavailable.
type GraphAPIConfig struct {
	Server string `yaml:"server"`
	Token  string `yaml:"token"`
}

// Enabled returns true when a graph server is configured.
func (g *GraphAPIConfig) Enabled() bool { return g.Server != "" }

// OutputConfig controls where resolved work units are written.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// Config is the top-level recipe structure.
type Config struct {
	Platform   string                 `yaml:"platform"`
	Source     SourceConfig           `yaml:"source"`
	Ownership  domain.OwnershipPolicy `yaml:"ownership"`
	DataHubAPI GraphAPIConfig         `yaml:"datahub_api"`
	Output     OutputConfig           `yaml:"output"`
	LogLevel   string                 `yaml:"log_level"`
}

// Load reads a recipe file, applies environment overrides and defaults, and
// validates the result. The graph token can be supplied via
// CORPSYNC_DATAHUB_TOKEN instead of the recipe file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	cfg := &Config{Ownership: domain.DefaultOwnershipPolicy()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	if v := os.Getenv("CORPSYNC_DATAHUB_TOKEN"); v != "" {
		cfg.DataHubAPI.Token = v
	}

	// Defaults
	if cfg.Platform == "" {
		cfg.Platform = "powerbi"
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "corpsync_mcps.ndjson"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the recipe is internally consistent.
func (c *Config) Validate() error {
	if c.Source.UsersFile == "" {
		return domain.ErrValidation("source.users_file is required")
	}
	return c.Ownership.Validate()
}

// SlogLevel maps the LogLevel string to an slog.Level.
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
