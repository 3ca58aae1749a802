package shortlink

import "errors"

var (
	// ErrNotFound is returned when no link exists for a token.
	ErrNotFound = errors.New("short link not found")

	// ErrAliasTaken is returned when a requested token already exists.
	// Repositories return it on unique-constraint violations so the
	// store, not the service pre-check, is the authoritative enforcement.
	ErrAliasTaken = errors.New("alias already taken")

	// ErrExpired is returned when a link is resolved past its expiry.
	ErrExpired = errors.New("short link expired")
)
