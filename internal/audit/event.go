package audit

import (
	"fmt"
	"time"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"

	timeLayout = "2006-01-02 15:04:05"
)

// Event is one audit record. Failures may carry no transaction, in which
// case the type is UNKNOWN and the amount zero.
type Event struct {
	Timestamp     time.Time       `json:"timestamp"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Type          string          `json:"type"`
	Source        string          `json:"source_account,omitempty"`
	Destination   string          `json:"destination_account,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason,omitempty"`
}

func SuccessEvent(tx *models.Transaction) Event {
	return Event{
		Timestamp:     tx.Timestamp(),
		Status:        StatusSuccess,
		TransactionID: tx.ID(),
		Type:          string(tx.Type()),
		Source:        tx.Source(),
		Destination:   tx.Destination(),
		Amount:        tx.Amount(),
	}
}

func FailureEvent(tx *models.Transaction, reason string, at time.Time) Event {
	e := Event{
		Timestamp: at,
		Status:    StatusFailed,
		Type:      "UNKNOWN",
		Amount:    decimal.Zero,
		Reason:    reason,
	}
	if tx != nil {
		e.TransactionID = tx.ID()
		e.Type = string(tx.Type())
		e.Source = tx.Source()
		e.Destination = tx.Destination()
		e.Amount = tx.Amount()
	}
	return e
}

// Line renders the event as one audit file line.
func (e Event) Line() string {
	tail := "ID: " + e.TransactionID
	if e.Status == StatusFailed {
		tail = "Reason: " + e.Reason
	}
	return fmt.Sprintf("[%s] %s | Type: %s | From: %s | To: %s | Amount: %s | %s",
		e.Status,
		e.Timestamp.Format(timeLayout),
		e.Type,
		models.OrNA(e.Source),
		models.OrNA(e.Destination),
		e.Amount.StringFixed(2),
		tail,
	)
}
