package services

import (
	"fmt"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
)

// BusinessMinimumDeposit is the smallest opening balance for a business account.
var BusinessMinimumDeposit = decimal.NewFromInt(1000)

var accountPrefixes = map[models.AccountType]string{
	models.AccountChecking: "CHK",
	models.AccountSavings:  "SAV",
	models.AccountBusiness: "BUS",
}

type AccountFactory struct {
	seq *Sequence
}

func NewAccountFactory(seq *Sequence) *AccountFactory {
	return &AccountFactory{seq: seq}
}

// CreateAccount checks every rule before drawing a number, so a rejected
// request does not consume one.
func (f *AccountFactory) CreateAccount(owner *models.User, initialBalance decimal.Decimal, accountType string) (*models.Account, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: owner is required", models.ErrValidation)
	}

	t, err := models.ParseAccountType(accountType)
	if err != nil {
		return nil, err
	}

	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative, got %s", models.ErrValidation, initialBalance.String())
	}

	if t == models.AccountBusiness && initialBalance.LessThan(BusinessMinimumDeposit) {
		return nil, fmt.Errorf("%w: business accounts require a minimum initial deposit of %s",
			models.ErrValidation, BusinessMinimumDeposit.StringFixed(2))
	}

	number := fmt.Sprintf("%s-%08d", accountPrefixes[t], f.seq.Next())
	return models.NewAccount(number, owner.ID(), initialBalance, t)
}

func (f *AccountFactory) CreateChecking(owner *models.User, initialBalance decimal.Decimal) (*models.Account, error) {
	return f.CreateAccount(owner, initialBalance, string(models.AccountChecking))
}

func (f *AccountFactory) CreateSavings(owner *models.User, initialBalance decimal.Decimal) (*models.Account, error) {
	return f.CreateAccount(owner, initialBalance, string(models.AccountSavings))
}

func (f *AccountFactory) CreateBusiness(owner *models.User, initialBalance decimal.Decimal) (*models.Account, error) {
	return f.CreateAccount(owner, initialBalance, string(models.AccountBusiness))
}

// ResetCounter rewinds number generation. Tests only.
func (f *AccountFactory) ResetCounter() {
	f.seq.Reset()
}
