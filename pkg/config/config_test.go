package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ticketwise.yaml"), []byte(`
server:
  port: 9090
jwt:
  access_ttl: 1h
database:
  url: postgres://file
`), 0o644))

	t.Setenv("CONFIG_PATH", dir)
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg, err := Load("ticketwise",
		WithDefaults(map[string]interface{}{"server.port": 8080, "log.level": "info"}),
		WithEnvAliases(map[string][]string{"database.url": {"DATABASE_URL"}}),
	)
	require.NoError(t, err)

	t.Run("file overrides default", func(t *testing.T) {
		assert.Equal(t, 9090, cfg.GetInt("server.port"))
	})

	t.Run("default used when absent", func(t *testing.T) {
		assert.Equal(t, "info", cfg.GetString("log.level"))
	})

	t.Run("alias env overrides file", func(t *testing.T) {
		assert.Equal(t, "postgres://env", cfg.GetString("database.url"))
	})

	t.Run("duration parsing", func(t *testing.T) {
		assert.Equal(t, time.Hour, cfg.GetDuration("jwt.access_ttl"))
	})
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("TICKETWISE_SERVER_PORT", "7070")

	cfg, err := Load("ticketwise", WithDefaults(map[string]interface{}{"server.port": 8080}))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.GetInt("server.port"))
}
