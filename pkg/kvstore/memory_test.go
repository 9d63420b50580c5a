package kvstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v1", value)

	// Set replaces the whole value
	require.NoError(t, store.Set(ctx, "k", "v2"))
	value, _, _ = store.Get(ctx, "k")
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	// deleting a missing key is not an error
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestMemoryStore_Quota(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(8)

	require.NoError(t, store.Set(ctx, "k", "12345678"))

	err := store.Set(ctx, "k", strings.Repeat("x", 9))
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// the previous value survives a rejected write
	value, found, _ := store.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, "12345678", value)
}
