package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ruralpay/ledger/internal/models"
)

const createAuditTable = `CREATE TABLE IF NOT EXISTS transaction_audit (
	id BIGSERIAL PRIMARY KEY,
	transaction_id TEXT,
	status TEXT NOT NULL,
	tx_type TEXT NOT NULL,
	source_account TEXT,
	destination_account TEXT,
	amount NUMERIC(20, 2) NOT NULL,
	reason TEXT,
	occurred_at TIMESTAMPTZ NOT NULL
)`

const insertAuditEvent = `INSERT INTO transaction_audit
	(transaction_id, status, tx_type, source_account, destination_account, amount, reason, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// SQLRecorder writes every transaction event to the transaction_audit table.
type SQLRecorder struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

func NewSQLRecorder(db *sql.DB) *SQLRecorder {
	return &SQLRecorder{
		db:      db,
		timeout: 5 * time.Second,
		now:     time.Now,
	}
}

// EnsureSchema creates the audit table if it does not exist yet.
func (r *SQLRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAuditTable); err != nil {
		return fmt.Errorf("failed to create transaction_audit: %w", err)
	}
	return nil
}

func (r *SQLRecorder) Name() string { return "SQLRecorder" }

func (r *SQLRecorder) OnSuccess(tx *models.Transaction) error {
	return r.insert(SuccessEvent(tx))
}

func (r *SQLRecorder) OnFailure(tx *models.Transaction, reason string) error {
	return r.insert(FailureEvent(tx, reason, r.now()))
}

func (r *SQLRecorder) insert(e Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, insertAuditEvent,
		nullable(e.TransactionID),
		e.Status,
		e.Type,
		nullable(e.Source),
		nullable(e.Destination),
		e.Amount.StringFixed(2),
		nullable(e.Reason),
		e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
