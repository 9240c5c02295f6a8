// Package storage defines the key-value persistence boundary used by the
// statistics and settings stores.
package storage

import (
	"context"
	"errors"
)

// Record keys of the two persisted records.
const (
	KeyUserStats = "userStats"
	KeySettings  = "appSettings"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// Store persists opaque blobs by key. Put overwrites.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Watcher is implemented by stores that can report external changes.
// The returned channel yields the key that changed and is closed when ctx
// is done or the store is closed.
type Watcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}
