package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9001
  mode: release
database:
  driver: postgres
  dsn: postgres://u:p@localhost:5432/owl
  conn_max_lifetime: 30m
storage:
  base_path: /srv/files
  max_size_mb:
    reels: 250
scheduler:
  interval: 30s
`

var envKeys = []string{"DATABASE_URL", "DATABASE_DRIVER", "FILE_STORAGE_PATH", "SERVER_PORT", "GIN_MODE", "BACKEND_CORS_ORIGINS", "LOG_LEVEL"}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfigFrom(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "/api/v1", cfg.Server.APIPrefix)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "/srv/files", cfg.Storage.BasePath)
	assert.Equal(t, 250.0, cfg.Storage.MaxSizeMB["reels"])
	assert.Equal(t, 10.0, cfg.Storage.DefaultMaxSizeMB)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.Interval)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5.0, cfg.Storage.MaxSizeMB["profile_images"])
	assert.Equal(t, time.Minute, cfg.Scheduler.Interval)
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db:5432/owl")
	t.Setenv("FILE_STORAGE_PATH", "/data/uploads")
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("BACKEND_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://env@db:5432/owl", cfg.Database.DSN)
	assert.Equal(t, "/data/uploads", cfg.Storage.BasePath)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfigFrom(writeConfig(t, "database:\n  driver: oracle\n"))
	assert.Error(t, err)
}

func TestGORMConfig(t *testing.T) {
	gc := (&DatabaseConfig{LogSQL: true}).GORMConfig()
	assert.True(t, gc.TranslateError)
	assert.NotNil(t, gc.Logger)
}
