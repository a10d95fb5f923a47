package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v1", got)

	require.NoError(t, store.Set(ctx, "k", "v2"))
	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", got)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)

	// deleting a missing key is not an error
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.Equal(t, 2, store.Len())

	require.NoError(t, store.Reset(ctx))
	require.Equal(t, 0, store.Len())
}

func TestPasswordKey(t *testing.T) {
	require.Equal(t, "password_abc", PasswordKey("abc"))
}
