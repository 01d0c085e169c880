package services

import "errors"

// Error kinds reported to callers. Controllers map these to HTTP statuses;
// anything else is a server-side failure and must not be masked as one of
// them. ErrUnauthorized carries the same message for a missing organization,
// an unclaimed account and a wrong password so callers cannot enumerate
// accounts.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("account is deactivated")
)
