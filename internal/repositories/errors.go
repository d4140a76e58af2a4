package repositories

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique field is already taken.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInsufficientStock is returned when a stock reservation cannot be met.
	ErrInsufficientStock = errors.New("insufficient stock")
)
