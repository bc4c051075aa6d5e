package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", cfg.ServerURL)
	assert.Equal(t, "taskkeeper.db", cfg.SessionDB)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_url":            "http://json:1",
		"session_db":            "json.db",
		"online_check_interval": "10s",
	})
	withArgs(t, "-c", path, "-a", "http://flag:2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://flag:2", cfg.ServerURL)
	assert.Equal(t, "json.db", cfg.SessionDB)
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_IntervalFlag(t *testing.T) {
	withArgs(t, "-i", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{ nope`), 0o600))
		withArgs(t, "-c", path)

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(t.TempDir(), "absent.json"))

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("bad url", func(t *testing.T) {
		withArgs(t, "-a", "localhost")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("zero interval", func(t *testing.T) {
		withArgs(t, "-i", "0")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
