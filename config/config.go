// Package config loads this repo's TOML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration for the ringd process.
type Config struct {
	Buffer    BufferConfig    `toml:"buffer"`
	Symbols   []string        `toml:"symbols"`
	Broadcast BroadcastConfig `toml:"broadcast"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// BufferConfig controls the shared ring buffer's shape.
type BufferConfig struct {
	Slots int `toml:"slots"`
}

// BroadcastConfig controls the WebSocket fan-out server.
type BroadcastConfig struct {
	Addr string `toml:"addr"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// Load reads and validates a TOML config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return &c, nil
}

func (c *Config) validate() error {
	if c.Buffer.Slots <= 0 {
		return fmt.Errorf("buffer.slots must be positive, got %d", c.Buffer.Slots)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	if c.Broadcast.Addr == "" {
		return fmt.Errorf("broadcast.addr must not be empty")
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr must not be empty")
	}
	return nil
}
