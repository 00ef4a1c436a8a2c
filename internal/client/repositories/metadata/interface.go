// Package metadata is the client's local key/value store, kept in the
// SQLite metadata table. Values are opaque bytes.
package metadata

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns the value of key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or replaces key.
	Set(ctx context.Context, key string, value []byte) error
	// UpdatedAt reports when key was last written; ok is false when absent.
	UpdatedAt(ctx context.Context, key string) (t time.Time, ok bool, err error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
