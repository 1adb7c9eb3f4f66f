package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses a full config", func(t *testing.T) {
		path := writeConfig(t, `
logger:
  level: debug
  format: text
telegram:
  token:
    source: embedded
    value: test-token
  pollTimeout: 5s
catalog:
  baseURL: https://api.example.com
  apiKey:
    source: embedded
    value: test-key
database:
  name: cinegram
  port: "5432"
  host:
    value: localhost
session:
  store: valkey
  idleTTL: 1h
  valkey:
    host:
      value: localhost:6379
bot:
  pacing: 2s
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, "text", cfg.Logger.Format)
		assert.Equal(t, 5*time.Second, cfg.Telegram.PollTimeout)
		assert.Equal(t, "https://api.example.com", cfg.Catalog.BaseURL)
		assert.Equal(t, "valkey", cfg.Session.Store)
		assert.Equal(t, time.Hour, cfg.Session.IdleTTL)
		assert.Equal(t, 2*time.Second, cfg.Bot.Pacing)

		token, err := cfg.Telegram.Token.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "test-token", token)
	})

	t.Run("applies defaults to an empty config", func(t *testing.T) {
		path := writeConfig(t, "{}\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Format)
		assert.Equal(t, 10*time.Second, cfg.Telegram.PollTimeout)
		assert.Equal(t, "memory", cfg.Session.Store)
		assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
		assert.Equal(t, "cinegram", cfg.Session.ValKey.Prefix)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "logger: [broken\n")

		_, err := Load(path)

		assert.Error(t, err)
	})
}
