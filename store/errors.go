package store

import "errors"

var (
	// ErrEmptyRunID indicates a blank run id.
	ErrEmptyRunID = errors.New("store: empty run id")
	// ErrRunNotFound indicates that no rows exist for a run id.
	ErrRunNotFound = errors.New("store: run not found")
)
