package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("development uses text at debug", func(t *testing.T) {
		logger := NewLogger("ledger", "development", "error")
		assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	})

	t.Run("production uses json at configured level", func(t *testing.T) {
		logger := NewLogger("ledger", "production", "warn")
		assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger := NewLogger("ledger", "production", "loud")
		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	})
}

func TestComponent(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogError(Component(logger, "audit"), "write failed", errors.New("disk full"), nil)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "audit", entry.Data["component"])
	assert.Equal(t, "disk full", entry.Data["error"])
}
