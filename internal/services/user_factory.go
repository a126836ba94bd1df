package services

import (
	"fmt"

	"github.com/ruralpay/ledger/internal/models"
)

type newUserInput struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=6"`
	Email    string `validate:"required,email"`
}

// UserFactory validates registration input, hashes the password and
// assigns the next USR id. It never stores what it builds.
type UserFactory struct {
	seq       *Sequence
	hasher    *PasswordHasher
	validator *ValidationHelper
}

func NewUserFactory(seq *Sequence, hasher *PasswordHasher) *UserFactory {
	return &UserFactory{
		seq:       seq,
		hasher:    hasher,
		validator: NewValidationHelper(),
	}
}

func (f *UserFactory) CreateUser(username, password, email, userType string) (*models.User, error) {
	t, err := models.ParseUserType(userType)
	if err != nil {
		return nil, err
	}

	if err := f.validator.ValidateDomain(&newUserInput{
		Username: username,
		Password: password,
		Email:    email,
	}); err != nil {
		return nil, err
	}

	hash, err := f.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return models.NewUser(f.nextID(), username, hash, email, t)
}

func (f *UserFactory) CreateStandardUser(username, password, email string) (*models.User, error) {
	return f.CreateUser(username, password, email, string(models.UserStandard))
}

func (f *UserFactory) CreatePremiumUser(username, password, email string) (*models.User, error) {
	return f.CreateUser(username, password, email, string(models.UserPremium))
}

func (f *UserFactory) CreateAdminUser(username, password, email string) (*models.User, error) {
	return f.CreateUser(username, password, email, string(models.UserAdmin))
}

// ResetCounter rewinds id generation. Tests only.
func (f *UserFactory) ResetCounter() {
	f.seq.Reset()
}

func (f *UserFactory) nextID() string {
	return fmt.Sprintf("USR-%06d", f.seq.Next())
}
