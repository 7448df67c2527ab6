package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySeenStoreMarkIfNew(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySeenStore()

	isNew, err := s.MarkIfNew(ctx, "gdelt:https://example.com/a")
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = s.MarkIfNew(ctx, "gdelt:https://example.com/a")
	require.NoError(t, err)
	assert.False(t, isNew)

	// A different key is unrelated.
	isNew, err = s.MarkIfNew(ctx, "gdelt:https://example.com/b")
	require.NoError(t, err)
	assert.True(t, isNew)
}
