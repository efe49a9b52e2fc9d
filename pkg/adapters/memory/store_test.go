package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinstack/pinstack/pkg/adapters/memory"
	"github.com/pinstack/pinstack/pkg/core"
)

func TestStore_SetGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Initialize(ctx))

	require.NoError(t, s.Set(ctx, "boards", []byte(`[]`)))

	data, err := s.Get(ctx, "boards")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
	assert.Equal(t, 1, s.Len())
}

func TestStore_GetMissing(t *testing.T) {
	s := memory.NewStore()

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	in := []byte(`"a"`)
	require.NoError(t, s.Set(ctx, "active-board-id", in))
	in[1] = 'z'

	out, err := s.Get(ctx, "active-board-id")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"a"`), out, "the store must not alias caller buffers")

	out[1] = 'z'
	again, err := s.Get(ctx, "active-board-id")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"a"`), again)
}

func TestStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Set(ctx, "boards", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "text-style", []byte(`{}`)))

	require.NoError(t, s.Delete(ctx, "boards"))
	require.NoError(t, s.Delete(ctx, "boards"), "deleting a missing record is not an error")
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Set(ctx, "boards", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "active-board-id", []byte(`"a"`)))
	require.NoError(t, s.Set(ctx, "text-style", []byte(`{}`)))

	keys, err := s.Keys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"active-board-id", "boards", "text-style"}, keys)

	keys, err = s.Keys(ctx, "*-*")
	require.NoError(t, err)
	assert.Equal(t, []string{"active-board-id", "text-style"}, keys)
}
