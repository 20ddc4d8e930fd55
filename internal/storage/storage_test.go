package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "storage.json"), zerolog.Nop())
	require.NoError(t, err)

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, TokenKey)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, TokenKey, "abc"))
			v, ok, err := s.Get(ctx, TokenKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "abc", v)

			require.NoError(t, s.Set(ctx, TokenKey, "def"))
			v, _, _ = s.Get(ctx, TokenKey)
			assert.Equal(t, "def", v)

			require.NoError(t, s.Remove(ctx, TokenKey))
			_, ok, err = s.Get(ctx, TokenKey)
			require.NoError(t, err)
			assert.False(t, ok)

			// Removing a missing key is not an error.
			assert.NoError(t, s.Remove(ctx, "missing"))
		})
	}
}

func TestClearCredentials(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, TokenKey, "abc"))
			require.NoError(t, s.Set(ctx, UserKey, `{"id":"u1"}`))
			require.NoError(t, s.Set(ctx, "theme", "dark"))

			require.NoError(t, ClearCredentials(ctx, s))

			_, ok, _ := s.Get(ctx, TokenKey)
			assert.False(t, ok)
			_, ok, _ = s.Get(ctx, UserKey)
			assert.False(t, ok)
			v, ok, _ := s.Get(ctx, "theme")
			assert.True(t, ok)
			assert.Equal(t, "dark", v)
		})
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	s, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, TokenKey, "persisted"))
	require.NoError(t, s.Set(ctx, UserKey, "gone"))
	require.NoError(t, s.Remove(ctx, UserKey))

	reopened, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	v, ok, err := reopened.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)

	_, ok, _ = reopened.Get(ctx, UserKey)
	assert.False(t, ok)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode storage file")
}

func TestFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, TokenKey, "t")
			_, _, _ = s.Get(ctx, TokenKey)
			_ = s.Remove(ctx, UserKey)
		}()
	}
	wg.Wait()

	v, ok, err := s.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "t", v)
}
