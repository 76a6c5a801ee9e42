package storage

import "context"

// Backend is a string key-value store. Implementations must be safe for
// concurrent use.
type Backend interface {
	// GetItem returns the stored value. ok is false when the key holds
	// nothing.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Close releases the resources held by the backend.
	Close() error
}
