package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config contains runtime configuration required by the service.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"5223"`
	// DataDir holds the scores and telemetry JSON files. In Kubernetes this
	// points at the persistent volume mount.
	DataDir string `env:"DATA_DIR" envDefault:"data"`
	// StaticDir is the frontend bundle to serve; empty disables static
	// serving so the service runs API-only.
	StaticDir string `env:"STATIC_DIR"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ScoresFile is the leaderboard's backing file path.
func (c Config) ScoresFile() string {
	return filepath.Join(c.DataDir, "scores.json")
}

// TelemetryFile is the event log's backing file path.
func (c Config) TelemetryFile() string {
	return filepath.Join(c.DataDir, "telemetry.json")
}
