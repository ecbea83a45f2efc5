package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownGracePeriod)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodySize)
	assert.Equal(t, "./data/wtf.db", cfg.Storage.Path)
	assert.Equal(t, 4, cfg.Analyzer.BulkConcurrency)
	assert.Empty(t, cfg.Auth.TokenSecret)
	assert.Empty(t, cfg.Slack.WebhookURL)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	yaml := `
server:
  listen: ":9090"
  readtimeout: 5s
analyzer:
  bulkconcurrency: 8
  useragent: custom-agent/1.0
storage:
  path: /tmp/records.db
auth:
  tokensecret: file-secret
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(&path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 8, cfg.Analyzer.BulkConcurrency)
	assert.Equal(t, "custom-agent/1.0", cfg.Analyzer.UserAgent)
	assert.Equal(t, "/tmp/records.db", cfg.Storage.Path)
	assert.Equal(t, "file-secret", cfg.Auth.TokenSecret)

	// Untouched values keep the defaults.
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  listen: \":9090\"\n"), 0o600))

	t.Setenv("WTF_SERVER_LISTEN", ":7070")
	t.Setenv("WTF_STORAGE_PATH", "/var/lib/wtf/records.db")

	cfg, err := Load(&path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Listen)
	assert.Equal(t, "/var/lib/wtf/records.db", cfg.Storage.Path)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	cfg, err := Load(&path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(&path)
	require.Error(t, err)
}
