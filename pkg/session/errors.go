package session

import "errors"

var (
	// ErrNotFound is returned when a session or value does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has expired.
	ErrExpired = errors.New("session: expired")

	// ErrInvalidToken is returned for empty or malformed session tokens.
	ErrInvalidToken = errors.New("session: invalid token")

	ErrTypeMismatch = errors.New("session: type mismatch")
)
