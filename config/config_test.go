package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "scripted", cfg.Backend.Provider)
	assert.Equal(t, 30*time.Minute, time.Duration(cfg.Session.TTL))
}

func TestLoadOverlaysFile(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sk-test")
	path := writeConfig(t, `
server:
  addr: ":9090"
session:
  ttl: 15m
backend:
  provider: anthropic
  api_key: ${TEST_API_KEY}
executor:
  max_hops: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 15*time.Minute, time.Duration(cfg.Session.TTL))
	assert.Equal(t, "anthropic", cfg.Backend.Provider)
	assert.Equal(t, "sk-test", cfg.Backend.APIKey)
	assert.Equal(t, 3, cfg.Executor.MaxHops)
	// Untouched sections keep defaults.
	assert.Equal(t, 2, cfg.Router.Threshold)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, "backend:\n  provider: crystal_ball\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown backend provider")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "session:\n  ttl: soon\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid duration")
}
