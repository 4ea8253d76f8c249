// Package common defines shared constants and sentinel errors used across
// the store, registry and transport layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("concurrent modification")

	// Registry errors.
	ErrAssetUnavailable   = errors.New("asset unavailable")
	ErrAlreadyExists      = errors.New("already exists")
	ErrAlreadyTerminal    = errors.New("lease already completed or expired")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrInvalidArgument    = errors.New("invalid argument")

	// Auth errors.
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrMissingCaller = errors.New("caller identity missing")

	// Snapshot export is not configured.
	ErrSnapshotDisabled = errors.New("snapshot export disabled")
)
