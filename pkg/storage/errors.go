package storage

import "errors"

var (
	// ErrDuplicateKey is matched by Register errors for a key already in
	// the registry.
	ErrDuplicateKey = errors.New("storage: key already registered")

	// ErrNotRegistered is matched by errors from reading or writing a key
	// that was never registered.
	ErrNotRegistered = errors.New("storage: key not registered")

	// ErrBackend is matched by errors reported by a Backend.
	ErrBackend = errors.New("storage: backend failure")

	// ErrClosed is returned by a backend after Close.
	ErrClosed = errors.New("storage: backend closed")
)
