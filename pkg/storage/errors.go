package storage

import "errors"

var (
	// ErrNotFound indicates the requested artifact does not exist.
	ErrNotFound = errors.New("artifact not found")
	// ErrEmptyKey indicates an empty storage key was provided.
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey indicates the storage key is not a single flat name.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
)
