package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the yaml file", func(t *testing.T) {
		// Given: a config file selecting the sqlite storage
		path := writeConfig(t, `
log-level: debug
storage: sqlite
save-dir: /tmp/reversi
default-save-name: match
compress-saves: true
sqlite-storage-path: /tmp/reversi/games.db
redis:
  host: redis.local
  port: "6380"
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every field is populated from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageSQLite, conf.Storage)
		assert.Equal(t, "/tmp/reversi", conf.SaveDir)
		assert.Equal(t, "match", conf.DefaultSaveName)
		assert.True(t, conf.CompressSaves)
		assert.Equal(t, "/tmp/reversi/games.db", conf.SQLiteStoragePath)
		assert.Equal(t, "redis.local:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageFile, conf.Storage)
		assert.Equal(t, "saves", conf.SaveDir)
		assert.Equal(t, "reversi_game", conf.DefaultSaveName)
		assert.False(t, conf.CompressSaves)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("REVERSI_STORAGE", StorageRedis)
		path := writeConfig(t, "storage: file\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, StorageRedis, conf.Storage)
	})

	t.Run("Unknown storage is rejected", func(t *testing.T) {
		path := writeConfig(t, "storage: floppy\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, ErrUnknownStorage)
	})

	t.Run("MustLoad panics on invalid config", func(t *testing.T) {
		path := writeConfig(t, "storage: floppy\n")

		assert.Panics(t, func() { MustLoad(path) })
	})
}
