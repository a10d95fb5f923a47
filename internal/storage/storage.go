// Package storage provides the durable key/value store that the session and
// watchlist services persist their state into. Values are opaque strings;
// the services own the JSON encoding on top.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates that no value is stored under the requested key.
	ErrNotFound = errors.New("key not found")
	// ErrRead indicates a storage read failure (not a missing key).
	ErrRead = errors.New("storage read failed")
	// ErrWrite indicates a storage write or delete failure.
	ErrWrite = errors.New("storage write failed")
)

// Store is the port implemented by the durable adapters.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Reset removes every stored key. Only the full data wipe uses it.
	Reset(ctx context.Context) error
}
