package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference is returned when a record points at one that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)
