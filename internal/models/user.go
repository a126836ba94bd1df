package models

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type UserType string

const (
	UserStandard UserType = "STANDARD"
	UserPremium  UserType = "PREMIUM"
	UserAdmin    UserType = "ADMIN"
)

func ParseUserType(s string) (UserType, error) {
	switch t := UserType(strings.ToUpper(strings.TrimSpace(s))); t {
	case UserStandard, UserPremium, UserAdmin:
		return t, nil
	}
	return "", fmt.Errorf("%w: invalid user type %q", ErrValidation, s)
}

// User is a directory member. ID and username never change after creation.
type User struct {
	mu           sync.RWMutex
	id           string
	username     string
	passwordHash string
	email        string
	userType     UserType
	active       bool
	createdAt    time.Time
	lastLogin    *time.Time
}

type UserSnapshot struct {
	ID        string     `json:"id" example:"USR-001001"`
	Username  string     `json:"username" example:"alice"`
	Email     string     `json:"email" example:"alice@example.com"`
	Type      UserType   `json:"user_type" example:"STANDARD"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func NewUser(id, username, passwordHash, email string, userType UserType) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		email:        email,
		userType:     userType,
		active:       true,
		createdAt:    time.Now(),
	}, nil
}

func (u *User) ID() string { return u.id }
func (u *User) Username() string { return u.username }
func (u *User) Type() UserType { return u.userType }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) Email() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.email
}

func (u *User) PasswordHash() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.passwordHash
}

func (u *User) Active() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.active
}

func (u *User) LastLogin() *time.Time {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.lastLogin == nil {
		return nil
	}
	t := *u.lastLogin
	return &t
}

func (u *User) UpdateLastLogin() {
	u.mu.Lock()
	defer u.mu.Unlock()
	now := time.Now()
	u.lastLogin = &now
}

func (u *User) ChangePassword(newHash string) error {
	if strings.TrimSpace(newHash) == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.passwordHash = newHash
	return nil
}

func (u *User) SetEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.email = email
	return nil
}

func (u *User) Deactivate() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.active = false
}

func (u *User) Activate() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.active = true
}

func (u *User) Snapshot() UserSnapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	s := UserSnapshot{
		ID:        u.id,
		Username:  u.username,
		Email:     u.email,
		Type:      u.userType,
		Active:    u.active,
		CreatedAt: u.createdAt,
	}
	if u.lastLogin != nil {
		t := *u.lastLogin
		s.LastLogin = &t
	}
	return s
}
