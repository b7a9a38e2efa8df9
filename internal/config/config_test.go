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
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5175, cfg.Port)
	assert.Equal(t, ":5175", cfg.Addr())
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "sqlite3", cfg.Store.Driver)
	assert.Equal(t, 16*time.Millisecond, cfg.Runner.Tick)
	assert.Equal(t, 7, cfg.JWTExpiresDays)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GAMEHUB_PORT", "9000")
	t.Setenv("GAMEHUB_STORE_BACKEND", "sql")
	t.Setenv("GAMEHUB_STORE_DSN", "/tmp/x.db")
	t.Setenv("GAMEHUB_RUNNER_TICK", "20ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "sql", cfg.Store.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Store.DSN)
	assert.Equal(t, 20*time.Millisecond, cfg.Runner.Tick)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamehub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8080
store:
  backend: redis
redis:
  addr: cache:6379
  db: 2
words:
  answers_file: /srv/answers.txt
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "/srv/answers.txt", cfg.Words.AnswersFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejects(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("GAMEHUB_RUNNER_TICK", "0s")
	_, err = Load("")
	assert.Error(t, err)
}
