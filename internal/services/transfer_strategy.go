package services

import (
	"fmt"
	"time"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
)

// TransferStrategy moves amount from source to destination as one unit:
// both account locks are held across the debit and the credit.
type TransferStrategy struct{}

func (TransferStrategy) Kind() models.TransactionType { return models.TransactionTransfer }

func (TransferStrategy) Validate(source, destination *models.Account, amount decimal.Decimal) bool {
	return source != nil &&
		destination != nil &&
		amount.IsPositive() &&
		source.Number() != destination.Number()
}

func (s TransferStrategy) Execute(source, destination *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	if !s.Validate(source, destination, amount) {
		return nil, fmt.Errorf("%w: transfer requires two distinct accounts and a positive amount", models.ErrValidation)
	}

	if err := models.MoveFunds(source, destination, amount); err != nil {
		return nil, err
	}

	return models.NewTransaction(newTransactionID(transferPrefix), models.TransactionTransfer,
		source.Number(), destination.Number(), amount, time.Now(),
		fmt.Sprintf("Transfer from %s to %s", source.Number(), destination.Number()))
}
