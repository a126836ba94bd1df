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
	t.Run("defaults", func(t *testing.T) {
		cfg := Load("")

		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.HTTP.Port)
		assert.Equal(t, "transactions_audit.log", cfg.Audit.File)
		assert.False(t, cfg.Audit.SQLEnabled)
		assert.Equal(t, 1000.0, cfg.Notification.Threshold)
		assert.Equal(t, int64(100), cfg.Notification.FeedLength)
		assert.Equal(t, "EUR", cfg.Ledger.Currency)
		assert.Equal(t, uint32(64*1024), cfg.Argon2.Memory)
		assert.Equal(t, uint8(4), cfg.Argon2.Threads)
		assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("NOTIFICATION_THRESHOLD", "250.5")
		t.Setenv("AUDIT_SQL_ENABLED", "true")
		t.Setenv("LEDGER_CURRENCY", "usd")
		t.Setenv("REDIS_PORT", "6380")

		cfg := Load("")

		assert.Equal(t, 250.5, cfg.Notification.Threshold)
		assert.True(t, cfg.Audit.SQLEnabled)
		assert.Equal(t, "USD", cfg.Ledger.Currency)
		assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	})

	t.Run("env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9090\nAPP_ENV=production\n"), 0o600))

		cfg := Load(path)

		assert.Equal(t, "9090", cfg.HTTP.Port)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("missing env file falls back to defaults", func(t *testing.T) {
		cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
		assert.Equal(t, "8080", cfg.HTTP.Port)
	})
}
