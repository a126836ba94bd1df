package services

import (
	"strings"
	"testing"

	"github.com/ruralpay/ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(testArgon2)

	t.Run("round trip", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)

		assert.Len(t, strings.Split(hash, "$"), 2)
		assert.NotContains(t, hash, "secret123")
		assert.True(t, hasher.Verify("secret123", hash))
		assert.False(t, hasher.Verify("secret124", hash))
	})

	t.Run("salted", func(t *testing.T) {
		a, err := hasher.Hash("secret123")
		require.NoError(t, err)
		b, err := hasher.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("malformed hashes never verify", func(t *testing.T) {
		assert.False(t, hasher.Verify("secret123", ""))
		assert.False(t, hasher.Verify("secret123", "no-separator"))
		assert.False(t, hasher.Verify("secret123", "!!!$!!!"))
	})

	t.Run("zero params fall back to defaults", func(t *testing.T) {
		h := NewPasswordHasher(config.Argon2Config{})
		assert.Equal(t, uint32(1), h.params.Time)
		assert.Equal(t, 16, h.params.SaltLength)
	})
}
