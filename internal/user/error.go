package user

import "errors"

var (
	// ErrForbidden is the canonical role/ownership failure shared by every
	// actor-gated operation in the system.
	ErrForbidden = errors.New("forbidden")

	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)
