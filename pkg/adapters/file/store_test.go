package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinstack/pinstack/pkg/adapters/file"
	"github.com/pinstack/pinstack/pkg/core"
)

func newTestStore(t *testing.T, encoding string) *file.Store {
	t.Helper()
	s := file.NewStore(file.Config{Path: t.TempDir(), Encoding: encoding})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStore_InitializeCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data")
	s := file.NewStore(file.Config{Path: path})

	require.NoError(t, s.Initialize(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_MustExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	s := file.NewStore(file.Config{Path: path, MustExist: true})

	assert.Error(t, s.Initialize(context.Background()))
}

func TestStore_SetGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "json")

	require.NoError(t, s.Set(ctx, "boards", []byte(`[{"id":"a"}]`)))

	data, err := s.Get(ctx, "boards")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(data))

	// The on-disk form is indented for hand-editing.
	raw, err := os.ReadFile(filepath.Join(s.Path, "boards.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  ")
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t, "json")

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_KeyValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "json")

	for _, key := range []string{"", "../escape", "a/b", "a b"} {
		assert.Error(t, s.Set(ctx, key, []byte(`{}`)), "key %q", key)
	}
	assert.NoError(t, s.Set(ctx, "text-style", []byte(`{}`)))
	assert.NoError(t, s.Set(ctx, "backup.2024", []byte(`{}`)))
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "json")

	require.NoError(t, s.Set(ctx, "boards", []byte(`[]`)))
	require.NoError(t, s.Delete(ctx, "boards"))
	require.NoError(t, s.Delete(ctx, "boards"), "deleting a missing record is not an error")

	_, err := s.Get(ctx, "boards")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "json")

	require.NoError(t, s.Set(ctx, "boards", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "active-board-id", []byte(`"a"`)))
	require.NoError(t, s.Set(ctx, "text-style", []byte(`{}`)))

	// Stray files that are not records must be invisible.
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, file.TempFilePrefix+"123"), []byte("x"), 0644))

	keys, err := s.Keys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"active-board-id", "boards", "text-style"}, keys)

	keys, err = s.Keys(ctx, "*board*")
	require.NoError(t, err)
	assert.Equal(t, []string{"active-board-id", "boards"}, keys)
}

func TestStore_CorruptRecordSurfacesError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "json")

	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "boards.json"), []byte("{truncated"), 0644))

	_, err := s.Get(ctx, "boards")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound, "corruption is distinct from absence")
}

func TestStore_YAMLEncoding(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "yaml")

	require.NoError(t, s.Set(ctx, "text-style", []byte(`{"fontSize":24,"family":"mono"}`)))

	// The record lands as .yaml, readable and hand-editable.
	raw, err := os.ReadFile(filepath.Join(s.Path, "text-style.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "fontSize: 24")

	// Get transcodes back to the JSON wire form.
	data, err := s.Get(ctx, "text-style")
	require.NoError(t, err)
	assert.JSONEq(t, `{"fontSize":24,"family":"mono"}`, string(data))

	keys, err := s.Keys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"text-style"}, keys)
}

func TestStore_YAMLHandEdit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "yaml")

	// A record written by hand, never by the store.
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "active-board-id.yaml"), []byte("b-7\n"), 0644))

	data, err := s.Get(ctx, "active-board-id")
	require.NoError(t, err)
	assert.JSONEq(t, `"b-7"`, string(data))
}

func TestStore_AtomicWriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "json")

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Set(ctx, "boards", []byte(`[]`)))
	}

	entries, err := os.ReadDir(s.Path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "boards.json", entries[0].Name())
}
