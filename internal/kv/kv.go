// internal/kv/kv.go
//
// Durable key-value collaborator consumed by the stats layer and the user
// registry. Implementations may be backed by memory (dev/tests) or SQLite.

package kv

import "context"

// Store is a minimal string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes or overwrites the value for key.
	Set(ctx context.Context, key, value string) error
}
