package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a conditional update finds the
	// occupied flag already in the requested state.
	ErrConflict = errors.New("occupancy conflict")
)
