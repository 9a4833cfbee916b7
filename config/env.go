package config

import (
	"os"

	"github.com/joho/godotenv"
)

// ConfigPathEnv is the environment variable used to override the default
// config file path, mirroring a common config-path override pattern.
const ConfigPathEnv = "RINGD_CONFIG"

// LoadEnv overlays a .env file onto the process environment, best-effort.
// A missing file is not an error — it is the common case outside of
// local development, matching godotenv's own documented usage pattern of
// calling Load before reading any environment variable.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ResolvePath returns the config file path to use: the RINGD_CONFIG
// environment variable if set, otherwise fallback.
func ResolvePath(fallback string) string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return fallback
}
