package services

import "github.com/ruralpay/ledger/internal/models"

// TransactionObserver is told about every execution attempt. tx may be nil
// in OnFailure when the strategy failed before building a record.
// Returned errors are logged and counted by the executor, never
// propagated to the caller.
type TransactionObserver interface {
	OnSuccess(tx *models.Transaction) error
	OnFailure(tx *models.Transaction, reason string) error
	Name() string
}
