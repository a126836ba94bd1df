package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit  TransactionType = "DEPOSIT"
	TransactionWithdraw TransactionType = "WITHDRAW"
	TransactionTransfer TransactionType = "TRANSFER"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TransactionDeposit, TransactionWithdraw, TransactionTransfer:
		return t, nil
	}
	return "", fmt.Errorf("%w: invalid transaction type %q", ErrValidation, s)
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

const timestampLayout = "2006-01-02 15:04:05"

// Transaction records one execution attempt. Amount, type and accounts are
// fixed at construction; only status and description change, and only when
// a failure or cancellation is marked.
type Transaction struct {
	id          string
	txType      TransactionType
	source      string
	destination string
	amount      decimal.Decimal
	timestamp   time.Time
	description string
	status      TransactionStatus
}

// NewTransaction builds a COMPLETED transaction. source is empty for
// deposits and destination is empty for withdrawals.
func NewTransaction(id string, txType TransactionType, source, destination string,
	amount decimal.Decimal, timestamp time.Time, description string) (*Transaction, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: transaction id is required", ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction amount must be positive, got %s", ErrValidation, amount.String())
	}

	return &Transaction{
		id:          id,
		txType:      txType,
		source:      source,
		destination: destination,
		amount:      amount,
		timestamp:   timestamp,
		description: description,
		status:      StatusCompleted,
	}, nil
}

func (t *Transaction) ID() string { return t.id }
func (t *Transaction) Type() TransactionType { return t.txType }
func (t *Transaction) Source() string { return t.source }
func (t *Transaction) Destination() string { return t.destination }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Timestamp() time.Time { return t.timestamp }
func (t *Transaction) Description() string { return t.description }
func (t *Transaction) Status() TransactionStatus { return t.status }

func (t *Transaction) Successful() bool {
	return t.status == StatusCompleted
}

// Touches reports whether the account is the source or the destination.
func (t *Transaction) Touches(accountNumber string) bool {
	return accountNumber != "" && (t.source == accountNumber || t.destination == accountNumber)
}

func (t *Transaction) MarkFailed(reason string) {
	t.status = StatusFailed
	t.description = t.description + " | reason: " + reason
}

func (t *Transaction) MarkCancelled() {
	t.status = StatusCancelled
}

// Formatted renders the transaction as a single history line.
func (t *Transaction) Formatted() string {
	return fmt.Sprintf("[%s] %s | %s | Amount: %s | From: %s | To: %s | Status: %s",
		t.timestamp.Format(timestampLayout),
		t.id,
		t.txType,
		t.amount.StringFixed(2),
		OrNA(t.source),
		OrNA(t.destination),
		t.status,
	)
}

func (t *Transaction) String() string {
	return t.Formatted()
}

type transactionJSON struct {
	TransactionID      string            `json:"transaction_id"`
	Type               TransactionType   `json:"type"`
	SourceAccount      string            `json:"source_account,omitempty"`
	DestinationAccount string            `json:"destination_account,omitempty"`
	Amount             decimal.Decimal   `json:"amount"`
	Timestamp          time.Time         `json:"timestamp"`
	Description        string            `json:"description"`
	Status             TransactionStatus `json:"status"`
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		TransactionID:      t.id,
		Type:               t.txType,
		SourceAccount:      t.source,
		DestinationAccount: t.destination,
		Amount:             t.amount,
		Timestamp:          t.timestamp,
		Description:        t.description,
		Status:             t.status,
	})
}

// OrNA substitutes "N/A" for an absent account number.
func OrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
