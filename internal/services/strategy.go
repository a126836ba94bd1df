package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionStrategy is one way of moving money. Execute validates,
// mutates balances and only then builds the record, so a returned
// transaction always reflects a committed mutation. An implementation may
// return a partial record together with an error; the executor marks it
// failed and never stores it.
type TransactionStrategy interface {
	Execute(source, destination *models.Account, amount decimal.Decimal) (*models.Transaction, error)
	Validate(source, destination *models.Account, amount decimal.Decimal) bool
	Kind() models.TransactionType
}

const (
	depositPrefix  = "DEP"
	withdrawPrefix = "WTH"
	transferPrefix = "TRF"
)

// newTransactionID returns PREFIX-<unix millis>-<12 hex chars>.
func newTransactionID(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
