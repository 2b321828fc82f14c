package storage

import "context"

// Store defines the key/value persistence interface used by the SDK to keep
// session state across restarts. Implementations must be safe for concurrent
// use and must return ErrKeyNotFound for absent keys so callers can
// distinguish absence from transport failures.
type Store interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any existing value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value stored under key. Removing an absent key
	// is not an error.
	Remove(ctx context.Context, key string) error
}
