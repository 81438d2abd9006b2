package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_LoadMissing(t *testing.T) {
	m := NewMemory()

	blob, ok, err := m.Load(context.Background(), KeyUsers)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, blob)
}

func TestMemory_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Save(ctx, KeyPrizes, []byte(`[{"id":"p1"}]`)))

	blob, ok, err := m.Load(ctx, KeyPrizes)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"p1"}]`, string(blob))

	// Overwrite is last-writer-wins.
	require.NoError(t, m.Save(ctx, KeyPrizes, []byte(`[]`)))
	blob, _, err = m.Load(ctx, KeyPrizes)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(blob))
}

func TestMemory_CopiesBlobs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	src := []byte("original")
	require.NoError(t, m.Save(ctx, KeyTickets, src))
	src[0] = 'X'

	blob, _, err := m.Load(ctx, KeyTickets)
	require.NoError(t, err)
	assert.Equal(t, "original", string(blob))

	blob[0] = 'Y'
	again, _, err := m.Load(ctx, KeyTickets)
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}
