package models

import "errors"

// Domain error kinds. Callers match them with errors.Is; the wrapping
// error carries the human readable detail.
var (
	ErrValidation         = errors.New("invalid parameters")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInactive           = errors.New("inactive")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrBalanceRemaining   = errors.New("account balance must be zero")
)
