package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTOML(t, `
symbols = ["BTC", "ETH"]

[buffer]
slots = 256

[broadcast]
addr = ":8080"

[metrics]
addr = ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Buffer.Slots)
	assert.Equal(t, []string{"BTC", "ETH"}, cfg.Symbols)
	assert.Equal(t, ":8080", cfg.Broadcast.Addr)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_RejectsNonPositiveSlots(t *testing.T) {
	path := writeTOML(t, `
symbols = ["BTC"]

[buffer]
slots = 0

[broadcast]
addr = ":8080"

[metrics]
addr = ":9090"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsEmptySymbols(t *testing.T) {
	path := writeTOML(t, `
symbols = []

[buffer]
slots = 8

[broadcast]
addr = ":8080"

[metrics]
addr = ":9090"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestResolvePath_UsesEnvOverride(t *testing.T) {
	t.Setenv(ConfigPathEnv, "/tmp/from-env.toml")
	assert.Equal(t, "/tmp/from-env.toml", ResolvePath("fallback.toml"))
}

func TestResolvePath_FallsBack(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	assert.Equal(t, "fallback.toml", ResolvePath("fallback.toml"))
}
