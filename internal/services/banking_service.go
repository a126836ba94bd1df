package services

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ruralpay/ledger/internal/logging"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BankingService is the directory of users and accounts. Accounts it hands
// out are the live instances the strategies mutate.
type BankingService struct {
	mu           sync.RWMutex
	users        map[string]*models.User
	byUsername   map[string]*models.User
	byEmail      map[string]*models.User
	accounts     map[string]*models.Account
	userAccounts map[string][]*models.Account

	userFactory    *UserFactory
	accountFactory *AccountFactory
	hasher         *PasswordHasher
	log            *logrus.Entry
}

func NewBankingService(userFactory *UserFactory, accountFactory *AccountFactory, hasher *PasswordHasher, logger *logrus.Logger) *BankingService {
	return &BankingService{
		users:          make(map[string]*models.User),
		byUsername:     make(map[string]*models.User),
		byEmail:        make(map[string]*models.User),
		accounts:       make(map[string]*models.Account),
		userAccounts:   make(map[string][]*models.Account),
		userFactory:    userFactory,
		accountFactory: accountFactory,
		hasher:         hasher,
		log:            logging.Component(logger, "directory"),
	}
}

// RegisterUser creates and stores a user. Usernames and emails are unique
// in the directory; emails compare case-insensitively.
func (b *BankingService) RegisterUser(username, password, email, userType string) (*models.User, error) {
	if err := b.checkUnique(username, email); err != nil {
		return nil, err
	}

	user, err := b.userFactory.CreateUser(username, password, email, userType)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// Re-check: hashing ran without the lock.
	if err := b.checkUniqueLocked(username, email); err != nil {
		return nil, err
	}
	b.users[user.ID()] = user
	b.byUsername[user.Username()] = user
	b.byEmail[strings.ToLower(user.Email())] = user

	b.log.WithFields(logrus.Fields{"user_id": user.ID(), "username": user.Username()}).Info("user registered")
	return user, nil
}

func (b *BankingService) checkUnique(username, email string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.checkUniqueLocked(username, email)
}

func (b *BankingService) checkUniqueLocked(username, email string) error {
	if _, taken := b.byUsername[username]; taken {
		return fmt.Errorf("%w: username %s is already taken", models.ErrValidation, username)
	}
	if _, taken := b.byEmail[strings.ToLower(email)]; taken {
		return fmt.Errorf("%w: email %s is already registered", models.ErrValidation, email)
	}
	return nil
}

// Authenticate checks the credentials and records the login time.
func (b *BankingService) Authenticate(username, password string) (*models.User, error) {
	b.mu.RLock()
	user, ok := b.byUsername[username]
	b.mu.RUnlock()

	if !ok || !b.hasher.Verify(password, user.PasswordHash()) {
		b.log.WithField("username", username).Warn("authentication failed")
		return nil, models.ErrInvalidCredentials
	}
	if !user.Active() {
		return nil, fmt.Errorf("%w: user %s is deactivated", models.ErrInactive, user.ID())
	}

	user.UpdateLastLogin()
	return user, nil
}

// CreateAccount opens an account for an existing, active user.
func (b *BankingService) CreateAccount(userID string, initialBalance decimal.Decimal, accountType string) (*models.Account, error) {
	user, err := b.UserByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, fmt.Errorf("%w: user %s is deactivated", models.ErrInactive, userID)
	}

	account, err := b.accountFactory.CreateAccount(user, initialBalance, accountType)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.accounts[account.Number()] = account
	b.userAccounts[userID] = append(b.userAccounts[userID], account)
	b.mu.Unlock()

	b.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"account_number": account.Number(),
		"type":           account.Type(),
	}).Info("account opened")
	return account, nil
}

func (b *BankingService) UserByID(id string) (*models.User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	user, ok := b.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, id)
	}
	return user, nil
}

func (b *BankingService) UserByUsername(username string) (*models.User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	user, ok := b.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, username)
	}
	return user, nil
}

func (b *BankingService) FindAccount(number string) (*models.Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	account, ok := b.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", models.ErrNotFound, number)
	}
	return account, nil
}

// AccountsOf returns the user's accounts in the order they were opened.
func (b *BankingService) AccountsOf(userID string) []*models.Account {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.userAccounts[userID])
}

// DeactivateUser deactivates the user and every account the user owns.
func (b *BankingService) DeactivateUser(userID string) error {
	user, err := b.UserByID(userID)
	if err != nil {
		return err
	}

	user.Deactivate()
	for _, account := range b.AccountsOf(userID) {
		account.Deactivate()
	}

	b.log.WithField("user_id", userID).Info("user deactivated")
	return nil
}

// CloseAccount deactivates an empty account. The account stays in the
// directory so history lookups still resolve.
func (b *BankingService) CloseAccount(number string) error {
	account, err := b.FindAccount(number)
	if err != nil {
		return err
	}

	if balance := account.Balance(); balance.IsPositive() {
		return fmt.Errorf("%w: account %s still holds %s", models.ErrBalanceRemaining, number, balance.StringFixed(2))
	}

	account.Deactivate()
	b.log.WithField("account_number", number).Info("account closed")
	return nil
}

func (b *BankingService) TotalUsers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.users)
}

func (b *BankingService) TotalAccounts() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.accounts)
}

func (b *BankingService) ActiveUsers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, u := range b.users {
		if u.Active() {
			n++
		}
	}
	return n
}

func (b *BankingService) ActiveAccounts() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, a := range b.accounts {
		if a.Active() {
			n++
		}
	}
	return n
}
