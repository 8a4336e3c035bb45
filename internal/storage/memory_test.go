package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SetGetOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("one")))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("one"), got)

	require.NoError(t, store.Set(ctx, "k", []byte("two")))
	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("two"), got)
}

func TestMemoryStore_ReturnsIsolatedCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("value")
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)

	got[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), again)
}
