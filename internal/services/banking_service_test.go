package services

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ruralpay/ledger/internal/logging"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBankingService() *BankingService {
	hasher := NewPasswordHasher(testArgon2)
	return NewBankingService(
		NewUserFactory(NewSequence(DefaultSequenceBaseline), hasher),
		NewAccountFactory(NewSequence(DefaultSequenceBaseline)),
		hasher,
		logging.Discard(),
	)
}

func TestBankingService_RegisterUser(t *testing.T) {
	bank := newTestBankingService()

	alice, err := bank.RegisterUser("alice", "secret123", "alice@example.com", "STANDARD")
	require.NoError(t, err)
	assert.Equal(t, "USR-001001", alice.ID())

	t.Run("lookups", func(t *testing.T) {
		byID, err := bank.UserByID(alice.ID())
		require.NoError(t, err)
		assert.Same(t, alice, byID)

		byName, err := bank.UserByUsername("alice")
		require.NoError(t, err)
		assert.Same(t, alice, byName)

		_, err = bank.UserByID("USR-999999")
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, err = bank.UserByUsername("nobody")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := bank.RegisterUser("alice", "secret123", "other@example.com", "STANDARD")
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "username")
	})

	t.Run("duplicate email ignores case", func(t *testing.T) {
		_, err := bank.RegisterUser("alice2", "secret123", "ALICE@example.com", "STANDARD")
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("invalid input is not stored", func(t *testing.T) {
		_, err := bank.RegisterUser("bo", "secret123", "bo@example.com", "STANDARD")
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Equal(t, 1, bank.TotalUsers())
	})
}

func TestBankingService_ConcurrentRegistration(t *testing.T) {
	bank := newTestBankingService()

	var ok atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := bank.RegisterUser("carol", "secret123", "carol@example.com", "STANDARD"); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, 1, bank.TotalUsers())
}

func TestBankingService_Authenticate(t *testing.T) {
	bank := newTestBankingService()
	alice, err := bank.RegisterUser("alice", "secret123", "alice@example.com", "STANDARD")
	require.NoError(t, err)

	t.Run("success records login", func(t *testing.T) {
		assert.Nil(t, alice.LastLogin())

		user, err := bank.Authenticate("alice", "secret123")
		require.NoError(t, err)
		assert.Same(t, alice, user)
		assert.NotNil(t, alice.LastLogin())
	})

	t.Run("wrong password or user", func(t *testing.T) {
		_, err := bank.Authenticate("alice", "wrong-password")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)

		_, err = bank.Authenticate("nobody", "secret123")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		require.NoError(t, bank.DeactivateUser(alice.ID()))

		_, err := bank.Authenticate("alice", "secret123")
		assert.ErrorIs(t, err, models.ErrInactive)
	})
}

func TestBankingService_Accounts(t *testing.T) {
	bank := newTestBankingService()
	alice, err := bank.RegisterUser("alice", "secret123", "alice@example.com", "STANDARD")
	require.NoError(t, err)

	chk, err := bank.CreateAccount(alice.ID(), dec("100"), "checking")
	require.NoError(t, err)
	sav, err := bank.CreateAccount(alice.ID(), dec("0"), "SAVINGS")
	require.NoError(t, err)

	t.Run("find and list in creation order", func(t *testing.T) {
		found, err := bank.FindAccount(chk.Number())
		require.NoError(t, err)
		assert.Same(t, chk, found)

		assert.Equal(t, []*models.Account{chk, sav}, bank.AccountsOf(alice.ID()))
		assert.Empty(t, bank.AccountsOf("USR-999999"))

		_, err = bank.FindAccount("CHK-99999999")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, err := bank.CreateAccount("USR-999999", dec("10"), "CHECKING")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("business minimum", func(t *testing.T) {
		_, err := bank.CreateAccount(alice.ID(), dec("500.0"), "BUSINESS")
		assert.ErrorIs(t, err, models.ErrValidation)

		bus, err := bank.CreateAccount(alice.ID(), dec("2000.0"), "BUSINESS")
		require.NoError(t, err)
		assert.Equal(t, models.AccountBusiness, bus.Type())
	})

	t.Run("close requires an empty account", func(t *testing.T) {
		err := bank.CloseAccount(chk.Number())
		assert.ErrorIs(t, err, models.ErrBalanceRemaining)
		assert.True(t, chk.Active())

		require.NoError(t, bank.CloseAccount(sav.Number()))
		assert.False(t, sav.Active())

		assert.ErrorIs(t, bank.CloseAccount("CHK-99999999"), models.ErrNotFound)
	})

	t.Run("totals", func(t *testing.T) {
		assert.Equal(t, 1, bank.TotalUsers())
		assert.Equal(t, 1, bank.ActiveUsers())
		assert.Equal(t, 3, bank.TotalAccounts())
		assert.Equal(t, 2, bank.ActiveAccounts())
	})

	t.Run("deactivating a user deactivates the accounts", func(t *testing.T) {
		require.NoError(t, bank.DeactivateUser(alice.ID()))

		assert.Equal(t, 0, bank.ActiveUsers())
		assert.Equal(t, 0, bank.ActiveAccounts())

		_, err := bank.CreateAccount(alice.ID(), dec("10"), "CHECKING")
		assert.ErrorIs(t, err, models.ErrInactive)

		assert.ErrorIs(t, bank.DeactivateUser("USR-999999"), models.ErrNotFound)
	})
}
