package store

import "errors"

// Sentinel errors for the conditions handlers map to HTTP statuses.
// Everything else coming out of the store is an unexpected failure.
var (
	// ErrNotFound is returned when a requested or referenced row does
	// not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique field collides, currently
	// only the client DNI.
	ErrDuplicate = errors.New("duplicate unique field")

	// ErrReferential is returned when a delete is blocked because
	// dependent rows still reference the target.
	ErrReferential = errors.New("record has dependent rows")
)
