package services

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ruralpay/ledger/internal/logging"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrExecution wraps every strategy failure surfaced by ExecuteTransaction.
// The underlying domain error stays reachable through errors.Is.
var ErrExecution = errors.New("transaction failed")

// executionResult carries the outcome of a strategy run to the notify step.
type executionResult struct {
	tx  *models.Transaction
	err error
}

func (r executionResult) succeeded() bool { return r.err == nil }

// TransactionService runs strategies, keeps the history of completed
// transactions and fans results out to observers.
type TransactionService struct {
	mu      sync.RWMutex
	history []*models.Transaction
	index   map[string]int

	obsMu            sync.RWMutex
	observers        []TransactionObserver
	observerFailures atomic.Int64

	deposit  TransactionStrategy
	withdraw TransactionStrategy
	transfer TransactionStrategy

	log *logrus.Entry
}

func NewTransactionService(logger *logrus.Logger) *TransactionService {
	return &TransactionService{
		index:    make(map[string]int),
		deposit:  DepositStrategy{},
		withdraw: WithdrawStrategy{},
		transfer: TransferStrategy{},
		log:      logging.Component(logger, "transaction"),
	}
}

// AddObserver registers o after the existing observers. nil and names
// already registered are ignored.
func (s *TransactionService) AddObserver(o TransactionObserver) {
	if o == nil {
		return
	}

	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	for _, existing := range s.observers {
		if existing.Name() == o.Name() {
			return
		}
	}
	s.observers = append(s.observers, o)
	s.log.WithField("observer", o.Name()).Debug("observer registered")
}

func (s *TransactionService) RemoveObserver(name string) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = slices.DeleteFunc(s.observers, func(o TransactionObserver) bool {
		return o.Name() == name
	})
}

func (s *TransactionService) Observers() []TransactionObserver {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	return slices.Clone(s.observers)
}

// ObserverFailures counts observer errors and panics that were suppressed.
func (s *TransactionService) ObserverFailures() int64 {
	return s.observerFailures.Load()
}

// ExecuteTransaction runs strategy once. On success the transaction is
// stored and then every observer gets OnSuccess; on failure nothing is
// stored, observers get OnFailure and the returned error wraps both
// ErrExecution and the cause.
func (s *TransactionService) ExecuteTransaction(strategy TransactionStrategy, source, destination *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	var result executionResult
	if strategy == nil {
		result.err = fmt.Errorf("%w: strategy is required", models.ErrValidation)
	} else {
		result.tx, result.err = strategy.Execute(source, destination, amount)
		if result.err == nil && result.tx == nil {
			result.err = fmt.Errorf("%s strategy returned no transaction", strategy.Kind())
		}
	}

	if !result.succeeded() {
		return nil, s.fail(result)
	}

	s.store(result.tx)
	s.log.WithFields(logrus.Fields{
		"transaction_id": result.tx.ID(),
		"type":           result.tx.Type(),
		"amount":         result.tx.Amount().String(),
	}).Info("transaction completed")

	s.notify("OnSuccess", func(o TransactionObserver) error {
		return o.OnSuccess(result.tx)
	})
	return result.tx, nil
}

func (s *TransactionService) fail(result executionResult) error {
	reason := result.err.Error()
	fields := logrus.Fields{"reason": reason}
	if result.tx != nil {
		result.tx.MarkFailed(reason)
		fields["transaction_id"] = result.tx.ID()
	}
	s.log.WithFields(fields).Warn("transaction failed")

	s.notify("OnFailure", func(o TransactionObserver) error {
		return o.OnFailure(result.tx, reason)
	})
	return fmt.Errorf("%w: %w", ErrExecution, result.err)
}

func (s *TransactionService) Deposit(destination *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	return s.ExecuteTransaction(s.deposit, nil, destination, amount)
}

func (s *TransactionService) Withdraw(source *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	return s.ExecuteTransaction(s.withdraw, source, nil, amount)
}

func (s *TransactionService) Transfer(source, destination *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	return s.ExecuteTransaction(s.transfer, source, destination, amount)
}

// notify calls event on every observer in registration order. A failing
// or panicking observer is logged and counted and the rest still run.
func (s *TransactionService) notify(event string, call func(TransactionObserver) error) {
	for _, o := range s.Observers() {
		s.invoke(o, event, call)
	}
}

func (s *TransactionService) invoke(o TransactionObserver, event string, call func(TransactionObserver) error) {
	defer func() {
		if r := recover(); r != nil {
			s.observerFailed(o, event, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := call(o); err != nil {
		s.observerFailed(o, event, err)
	}
}

func (s *TransactionService) observerFailed(o TransactionObserver, event string, err error) {
	s.observerFailures.Add(1)
	s.log.WithFields(logrus.Fields{
		"observer": o.Name(),
		"event":    event,
		"error":    err.Error(),
	}).Warn("observer failed")
}

func (s *TransactionService) store(tx *models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[tx.ID()]; ok {
		s.history[i] = tx
		return
	}
	s.index[tx.ID()] = len(s.history)
	s.history = append(s.history, tx)
}

func (s *TransactionService) GetTransaction(id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", models.ErrNotFound, id)
	}
	return s.history[i], nil
}

// AccountTransactions returns the stored transactions touching number,
// newest first. Equal timestamps keep insertion order.
func (s *TransactionService) AccountTransactions(number string) []*models.Transaction {
	result := s.filter(func(tx *models.Transaction) bool { return tx.Touches(number) })
	slices.SortStableFunc(result, func(a, b *models.Transaction) int {
		return b.Timestamp().Compare(a.Timestamp())
	})
	return result
}

func (s *TransactionService) TransactionsByType(t models.TransactionType) []*models.Transaction {
	return s.filter(func(tx *models.Transaction) bool { return tx.Type() == t })
}

// NetAmount is the sum of credits to number minus the sum of debits from
// it over the stored history.
func (s *TransactionService) NetAmount(number string) decimal.Decimal {
	net := decimal.Zero
	for _, tx := range s.filter(func(tx *models.Transaction) bool { return tx.Touches(number) }) {
		if tx.Destination() == number {
			net = net.Add(tx.Amount())
		}
		if tx.Source() == number {
			net = net.Sub(tx.Amount())
		}
	}
	return net
}

func (s *TransactionService) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

func (s *TransactionService) SuccessfulCount() int {
	return len(s.filter(func(tx *models.Transaction) bool { return tx.Successful() }))
}

// AllTransactions returns the history in insertion order.
func (s *TransactionService) AllTransactions() []*models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history)
}

func (s *TransactionService) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.index = make(map[string]int)
	s.log.Info("transaction history cleared")
}

func (s *TransactionService) filter(keep func(*models.Transaction) bool) []*models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Transaction
	for _, tx := range s.history {
		if keep(tx) {
			result = append(result, tx)
		}
	}
	return result
}
