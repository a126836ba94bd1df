package services

import (
	"testing"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserFactory() *UserFactory {
	return NewUserFactory(NewSequence(DefaultSequenceBaseline), NewPasswordHasher(testArgon2))
}

func TestUserFactory_CreateUser(t *testing.T) {
	t.Run("assigns sequential ids and hashes the password", func(t *testing.T) {
		f := newTestUserFactory()

		alice, err := f.CreateUser("alice", "secret123", "alice@example.com", "standard")
		require.NoError(t, err)
		bob, err := f.CreatePremiumUser("bob", "secret123", "bob@example.com")
		require.NoError(t, err)

		assert.Equal(t, "USR-001001", alice.ID())
		assert.Equal(t, "USR-001002", bob.ID())
		assert.Equal(t, models.UserStandard, alice.Type())
		assert.Equal(t, models.UserPremium, bob.Type())
		assert.True(t, alice.Active())
		assert.NotEqual(t, "secret123", alice.PasswordHash())
		assert.True(t, f.hasher.Verify("secret123", alice.PasswordHash()))
	})

	t.Run("admin", func(t *testing.T) {
		u, err := newTestUserFactory().CreateAdminUser("root", "secret123", "root@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.UserAdmin, u.Type())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		f := newTestUserFactory()

		_, err := f.CreateUser("al", "secret123", "al@example.com", "STANDARD")
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "username")

		_, err = f.CreateUser("alice", "12345", "alice@example.com", "STANDARD")
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "password")

		_, err = f.CreateUser("alice", "secret123", "not-an-email", "STANDARD")
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "email")

		_, err = f.CreateUser("alice", "secret123", "alice@example.com", "GOLD")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("rejected input does not consume an id", func(t *testing.T) {
		f := newTestUserFactory()

		_, err := f.CreateUser("al", "secret123", "al@example.com", "STANDARD")
		require.Error(t, err)

		u, err := f.CreateStandardUser("alice", "secret123", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "USR-001001", u.ID())
	})

	t.Run("reset counter", func(t *testing.T) {
		f := newTestUserFactory()
		_, err := f.CreateStandardUser("alice", "secret123", "alice@example.com")
		require.NoError(t, err)

		f.ResetCounter()
		u, err := f.CreateStandardUser("bob", "secret123", "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, "USR-001001", u.ID())
	})
}

func TestAccountFactory_CreateAccount(t *testing.T) {
	owner, err := newTestUserFactory().CreateStandardUser("alice", "secret123", "alice@example.com")
	require.NoError(t, err)

	t.Run("prefixes and sequential numbers", func(t *testing.T) {
		f := NewAccountFactory(NewSequence(DefaultSequenceBaseline))

		chk, err := f.CreateChecking(owner, dec("100"))
		require.NoError(t, err)
		sav, err := f.CreateAccount(owner, dec("0"), "savings")
		require.NoError(t, err)

		assert.Equal(t, "CHK-00001001", chk.Number())
		assert.Equal(t, "SAV-00001002", sav.Number())
		assert.Equal(t, owner.ID(), chk.OwnerID())
		assert.True(t, dec("100").Equal(chk.Balance()))
		assert.Equal(t, models.AccountSavings, sav.Type())
	})

	t.Run("business minimum deposit", func(t *testing.T) {
		f := NewAccountFactory(NewSequence(DefaultSequenceBaseline))

		_, err := f.CreateBusiness(owner, dec("500.0"))
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "1000.00")

		bus, err := f.CreateBusiness(owner, dec("2000.0"))
		require.NoError(t, err)
		assert.Equal(t, models.AccountBusiness, bus.Type())
		assert.Equal(t, "BUS-00001001", bus.Number())
	})

	t.Run("exact business minimum is accepted", func(t *testing.T) {
		f := NewAccountFactory(NewSequence(DefaultSequenceBaseline))
		_, err := f.CreateBusiness(owner, dec("1000"))
		assert.NoError(t, err)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		f := NewAccountFactory(NewSequence(DefaultSequenceBaseline))

		_, err := f.CreateAccount(nil, dec("10"), "CHECKING")
		assert.ErrorIs(t, err, models.ErrValidation)

		_, err = f.CreateAccount(owner, dec("-1"), "CHECKING")
		assert.ErrorIs(t, err, models.ErrValidation)

		_, err = f.CreateAccount(owner, dec("10"), "BROKERAGE")
		assert.ErrorIs(t, err, models.ErrValidation)

		acc, err := f.CreateSavings(owner, dec("10"))
		require.NoError(t, err)
		assert.Equal(t, "SAV-00001001", acc.Number())
	})
}
