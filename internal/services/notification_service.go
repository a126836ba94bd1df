package services

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ruralpay/ledger/internal/logging"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultAlertThreshold is the amount at or above which a completed
// transaction also raises a large-transaction alert.
const DefaultAlertThreshold = 1000.0

// NotificationService keeps an in-memory list of customer-facing messages.
type NotificationService struct {
	mu            sync.Mutex
	notifications []string
	threshold     decimal.Decimal
	log           *logrus.Entry
}

func NewNotificationService(threshold float64, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		threshold: decimal.NewFromFloat(threshold),
		log:       logging.Component(logger, "notification"),
	}
}

func (n *NotificationService) Name() string { return "NotificationService" }

func (n *NotificationService) OnSuccess(tx *models.Transaction) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.push(SuccessMessage(tx))
	if tx.Amount().GreaterThanOrEqual(n.threshold) {
		n.push(fmt.Sprintf("ALERT: large transaction of %s detected, ID: %s", tx.Amount().StringFixed(2), tx.ID()))
	}
	return nil
}

func (n *NotificationService) OnFailure(tx *models.Transaction, reason string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.push(FailureMessage(tx, reason))
	return nil
}

func (n *NotificationService) push(msg string) {
	n.notifications = append(n.notifications, msg)
	n.log.Debug(msg)
}

// Notifications returns a copy of the messages in the order they were raised.
func (n *NotificationService) Notifications() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.notifications)
}

func (n *NotificationService) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notifications)
}

func (n *NotificationService) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = nil
}

func (n *NotificationService) SetThreshold(threshold decimal.Decimal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.threshold = threshold
}

func (n *NotificationService) Threshold() decimal.Decimal {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.threshold
}

// SuccessMessage renders the customer-facing text for a completed transaction.
func SuccessMessage(tx *models.Transaction) string {
	amount := tx.Amount().StringFixed(2)
	switch tx.Type() {
	case models.TransactionDeposit:
		return fmt.Sprintf("Deposit of %s credited to account %s", amount, tx.Destination())
	case models.TransactionWithdraw:
		return fmt.Sprintf("Withdrawal of %s debited from account %s", amount, tx.Source())
	case models.TransactionTransfer:
		return fmt.Sprintf("Transfer of %s from account %s to account %s", amount, tx.Source(), tx.Destination())
	default:
		return "Transaction completed: " + tx.ID()
	}
}

func FailureMessage(tx *models.Transaction, reason string) string {
	id := "N/A"
	if tx != nil {
		id = tx.ID()
	}
	return fmt.Sprintf("Transaction failed: %s. Reason: %s", id, reason)
}
