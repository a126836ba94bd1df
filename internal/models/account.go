package models

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking AccountType = "CHECKING"
	AccountSavings  AccountType = "SAVINGS"
	AccountBusiness AccountType = "BUSINESS"
)

// ParseAccountType accepts any letter case.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(strings.ToUpper(strings.TrimSpace(s))); t {
	case AccountChecking, AccountSavings, AccountBusiness:
		return t, nil
	}
	return "", fmt.Errorf("%w: invalid account type %q", ErrValidation, s)
}

// Account is a balance holder shared by reference between the directory and
// the strategies. Every read or write of the balance holds mu.
type Account struct {
	mu           sync.Mutex
	number       string
	ownerID      string
	balance      decimal.Decimal
	accountType  AccountType
	active       bool
	createdAt    time.Time
	lastModified time.Time
}

// AccountSnapshot is a point-in-time copy of an Account, safe to serialize.
type AccountSnapshot struct {
	Number       string          `json:"account_number"`
	OwnerID      string          `json:"owner_id"`
	Balance      decimal.Decimal `json:"balance"`
	Type         AccountType     `json:"account_type"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	LastModified time.Time       `json:"last_modified"`
}

func NewAccount(number, ownerID string, balance decimal.Decimal, accountType AccountType) (*Account, error) {
	if strings.TrimSpace(number) == "" {
		return nil, fmt.Errorf("%w: account number is required", ErrValidation)
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative, got %s", ErrValidation, balance.String())
	}

	now := time.Now()
	return &Account{
		number:       number,
		ownerID:      ownerID,
		balance:      balance,
		accountType:  accountType,
		active:       true,
		createdAt:    now,
		lastModified: now,
	}, nil
}

func (a *Account) Number() string { return a.number }
func (a *Account) OwnerID() string { return a.ownerID }
func (a *Account) Type() AccountType { return a.accountType }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *Account) LastModified() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastModified
}

func (a *Account) Snapshot() AccountSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AccountSnapshot{
		Number:       a.number,
		OwnerID:      a.ownerID,
		Balance:      a.balance,
		Type:         a.accountType,
		Active:       a.active,
		CreatedAt:    a.createdAt,
		LastModified: a.lastModified,
	}
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.credit(amount)
}

// Debit removes amount from the balance. The funds check and the mutation
// happen under the same lock.
func (a *Account) Debit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.debit(amount)
}

func (a *Account) Deactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = false
	a.lastModified = time.Now()
}

func (a *Account) Activate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = true
	a.lastModified = time.Now()
}

func (a *Account) credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit amount must be positive, got %s", ErrValidation, amount.String())
	}
	if !a.active {
		return fmt.Errorf("%w: account %s is deactivated", ErrInactive, a.number)
	}
	a.balance = a.balance.Add(amount)
	a.lastModified = time.Now()
	return nil
}

func (a *Account) debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit amount must be positive, got %s", ErrValidation, amount.String())
	}
	if !a.active {
		return fmt.Errorf("%w: account %s is deactivated", ErrInactive, a.number)
	}
	if a.balance.LessThan(amount) {
		return InsufficientFunds(a.balance, amount)
	}
	a.balance = a.balance.Sub(amount)
	a.lastModified = time.Now()
	return nil
}

// InsufficientFunds builds the error reported when amount exceeds available.
func InsufficientFunds(available, requested decimal.Decimal) error {
	return fmt.Errorf("%w: available %s, requested %s",
		ErrInsufficientFunds, available.StringFixed(2), requested.StringFixed(2))
}

// LockPair locks both accounts in account-number order and returns the
// matching unlock. Two transfers crossing in opposite directions acquire
// the locks in the same order and cannot deadlock.
func LockPair(a, b *Account) (unlock func()) {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}

	first, second := a, b
	if a.number > b.number {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

// MoveFunds debits from and credits to while holding both locks, so no
// other reader sees the intermediate state. Every check runs before the
// first mutation; on error neither balance changes.
func MoveFunds(from, to *Account, amount decimal.Decimal) error {
	if from.number == to.number {
		return fmt.Errorf("%w: cannot transfer to the same account", ErrValidation)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: transfer amount must be positive, got %s", ErrValidation, amount.String())
	}

	unlock := LockPair(from, to)
	defer unlock()

	if !from.active {
		return fmt.Errorf("%w: account %s is deactivated", ErrInactive, from.number)
	}
	if !to.active {
		return fmt.Errorf("%w: account %s is deactivated", ErrInactive, to.number)
	}
	if from.balance.LessThan(amount) {
		return InsufficientFunds(from.balance, amount)
	}

	if err := from.debit(amount); err != nil {
		return err
	}
	return to.credit(amount)
}
