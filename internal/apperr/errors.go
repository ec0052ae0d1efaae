// Package apperr defines the sentinel errors shared across the engine.
package apperr

import "errors"

var (
	// ErrCancelled is a user-initiated abort with no fallback available.
	// It propagates to the orchestrator, which answers with the fallback
	// document instead of crashing.
	ErrCancelled = errors.New("cancelled by user")

	// ErrConfiguration marks a programming-level invariant violation
	// (unsupported category, missing collaborator data). Always fatal.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNotFound is returned when a vault entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a vault entry would be overwritten.
	ErrAlreadyExists = errors.New("already exists")
)
