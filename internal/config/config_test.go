package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		cfg, err := Parse([]string{"--jwt-secret", "s3cret", "--db-path", "/tmp/x.db", "--token-ttl", "1h"})
		require.NoError(t, err)
		require.Equal(t, "s3cret", cfg.JWTSecret)
		require.Equal(t, "/tmp/x.db", cfg.DBPath)
		require.Equal(t, time.Hour, cfg.TokenTTL)
		require.Equal(t, ":8080", cfg.Listen)
		require.Equal(t, "/metrics", cfg.MetricsPath)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "from-env")
		t.Setenv("LOG_LEVEL", "debug")
		cfg, err := Parse(nil)
		require.NoError(t, err)
		require.Equal(t, "from-env", cfg.JWTSecret)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Parse(nil)
		require.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := Parse([]string{"--jwt-secret", "x", "--log-level", "loud"})
		require.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SHOPPINGLIST_TEST_VALUE=hello\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SHOPPINGLIST_TEST_VALUE") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	require.Equal(t, "hello", os.Getenv("SHOPPINGLIST_TEST_VALUE"))
}
