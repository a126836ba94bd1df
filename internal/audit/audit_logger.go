package audit

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ruralpay/ledger/internal/logging"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/sirupsen/logrus"
)

// AuditLogger appends one line per transaction event to a writer,
// normally a file opened in append mode.
type AuditLogger struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	now    func() time.Time
	log    *logrus.Entry
}

func NewAuditLogger(w io.Writer, logger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		w:   w,
		now: time.Now,
		log: logging.Component(logger, "audit"),
	}
}

// OpenAuditLogger appends to path, creating it when missing.
func OpenAuditLogger(path string, logger *logrus.Logger) (*AuditLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log %s: %w", path, err)
	}
	a := NewAuditLogger(f, logger)
	a.closer = f
	return a, nil
}

func (a *AuditLogger) Name() string { return "AuditLogger" }

func (a *AuditLogger) OnSuccess(tx *models.Transaction) error {
	if err := a.write(SuccessEvent(tx)); err != nil {
		return err
	}
	a.log.WithField("transaction_id", tx.ID()).Debug("transaction recorded")
	return nil
}

func (a *AuditLogger) OnFailure(tx *models.Transaction, reason string) error {
	if err := a.write(FailureEvent(tx, reason, a.now())); err != nil {
		return err
	}
	a.log.WithField("reason", reason).Debug("failed transaction recorded")
	return nil
}

func (a *AuditLogger) write(e Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := io.WriteString(a.w, e.Line()+"\n"); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

func (a *AuditLogger) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
