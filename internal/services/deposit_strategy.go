package services

import (
	"fmt"
	"time"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
)

// DepositStrategy credits the destination. The source is ignored.
type DepositStrategy struct{}

func (DepositStrategy) Kind() models.TransactionType { return models.TransactionDeposit }

func (DepositStrategy) Validate(_, destination *models.Account, amount decimal.Decimal) bool {
	return destination != nil && amount.IsPositive()
}

func (s DepositStrategy) Execute(source, destination *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	if !s.Validate(source, destination, amount) {
		return nil, fmt.Errorf("%w: deposit requires a destination account and a positive amount", models.ErrValidation)
	}

	if err := destination.Credit(amount); err != nil {
		return nil, err
	}

	return models.NewTransaction(newTransactionID(depositPrefix), models.TransactionDeposit,
		"", destination.Number(), amount, time.Now(), "Deposit to "+destination.Number())
}
