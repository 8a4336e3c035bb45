package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "hospital-data-v1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_SetGetOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "hospital-data-v1", []byte(`{"patients":[]}`)))
	got, err := store.Get(ctx, "hospital-data-v1")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"patients":[]}`), got)

	require.NoError(t, store.Set(ctx, "hospital-data-v1", []byte(`{"patients":null}`)))
	got, err = store.Get(ctx, "hospital-data-v1")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"patients":null}`), got)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", []byte("persisted")))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("persisted"), got)
}
