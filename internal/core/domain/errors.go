package domain

import "errors"

// Sentinel errors for business-rule violations. Handlers map these onto
// HTTP statuses; repositories and services return them wrapped so
// errors.Is still matches.
var (
	ErrUnknownSymbol      = errors.New("invalid symbol")
	ErrInsufficientFunds  = errors.New("can't afford")
	ErrInsufficientShares = errors.New("too many shares")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrNotFound           = errors.New("not found")
)
