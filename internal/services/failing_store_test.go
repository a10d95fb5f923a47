package services

import (
	"context"
	"errors"
	"fmt"

	"moviedeck/internal/storage"
)

// failingStore wraps a real store and fails writes to one key, for
// exercising the no-partial-write guarantees.
type failingStore struct {
	storage.Store
	failKey string
}

var errInjected = errors.New("injected write failure")

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.failKey != "" && key == f.failKey {
		return fmt.Errorf("%w: %v", storage.ErrWrite, errInjected)
	}
	return f.Store.Set(ctx, key, value)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	if f.failKey != "" && key == f.failKey {
		return fmt.Errorf("%w: %v", storage.ErrWrite, errInjected)
	}
	return f.Store.Delete(ctx, key)
}
