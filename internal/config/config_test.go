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

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file overriding every section
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
socket-port: "8081"
game:
  computer-delay: 250ms
  round-delay: 3s
  seed: 42
score:
  storage: redis
redis:
  host: cache
  port: "6380"
`)

		// When: loading it
		conf := MustLoad(path)

		// Then: the file values are used
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "8081", conf.SocketPort)
		assert.Equal(t, 250*time.Millisecond, conf.Game.ComputerDelay)
		assert.Equal(t, 3*time.Second, conf.Game.RoundDelay)
		assert.Equal(t, int64(42), conf.Game.Seed)
		assert.True(t, conf.Score.UsesRedis())
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: a config file setting only the log level
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf := MustLoad(path)

		// Then: the defaults fill the rest
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, time.Second, conf.Game.ComputerDelay)
		assert.Equal(t, 2*time.Second, conf.Game.RoundDelay)
		assert.Zero(t, conf.Game.Seed)
		assert.Equal(t, ScoreStorageMemory, conf.Score.Storage)
		assert.False(t, conf.Score.UsesRedis())
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		// When/Then: loading a path that does not exist panics
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
