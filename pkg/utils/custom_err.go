package utils

import "errors"

var (
	ErrDatabaseError       = errors.New("database error")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrPreferencesNotFound = errors.New("preferences not found")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrInvalidSection      = errors.New("invalid preference section")
)
