package services

import (
	"testing"

	"github.com/ruralpay/ledger/internal/config"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObserver struct {
	mock.Mock
	name string
}

func NewMockObserver(name string) *MockObserver {
	return &MockObserver{name: name}
}

func (m *MockObserver) Name() string { return m.name }

func (m *MockObserver) OnSuccess(tx *models.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *MockObserver) OnFailure(tx *models.Transaction, reason string) error {
	args := m.Called(tx, reason)
	return args.Error(0)
}

type MockStrategy struct {
	mock.Mock
}

func (m *MockStrategy) Kind() models.TransactionType { return models.TransactionDeposit }

func (m *MockStrategy) Validate(source, destination *models.Account, amount decimal.Decimal) bool {
	args := m.Called(source, destination, amount)
	return args.Bool(0)
}

func (m *MockStrategy) Execute(source, destination *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	args := m.Called(source, destination, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// panickingObserver blows up on every event.
type panickingObserver struct{}

func (panickingObserver) Name() string { return "Panicker" }

func (panickingObserver) OnSuccess(*models.Transaction) error { panic("observer exploded") }

func (panickingObserver) OnFailure(*models.Transaction, string) error { panic("observer exploded") }

// orderObserver appends its name to a shared log on every event.
type orderObserver struct {
	name string
	log  *[]string
}

func (o orderObserver) Name() string { return o.name }

func (o orderObserver) OnSuccess(*models.Transaction) error {
	*o.log = append(*o.log, o.name)
	return nil
}

func (o orderObserver) OnFailure(*models.Transaction, string) error {
	*o.log = append(*o.log, o.name)
	return nil
}

var testArgon2 = config.Argon2Config{Time: 1, Memory: 1024, Threads: 1, KeyLength: 32, SaltLength: 16}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestAccount(t *testing.T, number, balance string) *models.Account {
	t.Helper()
	account, err := models.NewAccount(number, "USR-001001", dec(balance), models.AccountChecking)
	require.NoError(t, err)
	return account
}
