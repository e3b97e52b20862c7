package profile

import "errors"

var (
	// ErrDuplicateContact is returned when a contact number is already registered.
	ErrDuplicateContact = errors.New("a profile already exists with this contact number")
	// ErrNotFound is returned when no profile matches the lookup key.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidCredentials covers both an unknown contact number and a wrong
	// secret, so login failures never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid contact number or password")
)
