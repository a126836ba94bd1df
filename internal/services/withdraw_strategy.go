package services

import (
	"fmt"
	"time"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
)

// WithdrawStrategy debits the source. The destination is ignored. An
// amount equal to the balance is allowed.
type WithdrawStrategy struct{}

func (WithdrawStrategy) Kind() models.TransactionType { return models.TransactionWithdraw }

func (WithdrawStrategy) Validate(source, _ *models.Account, amount decimal.Decimal) bool {
	return source != nil && amount.IsPositive()
}

func (s WithdrawStrategy) Execute(source, destination *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	if !s.Validate(source, destination, amount) {
		return nil, fmt.Errorf("%w: withdrawal requires a source account and a positive amount", models.ErrValidation)
	}

	if err := source.Debit(amount); err != nil {
		return nil, err
	}

	return models.NewTransaction(newTransactionID(withdrawPrefix), models.TransactionWithdraw,
		source.Number(), "", amount, time.Now(), "Withdrawal from "+source.Number())
}
