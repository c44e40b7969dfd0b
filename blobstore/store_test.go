package blobstore

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "artifacts/a.bin", []byte("hello")))
	require.NoError(t, store.Put(ctx, "artifacts/b.bin", []byte("world!")))
	require.NoError(t, store.Put(ctx, "other.bin", []byte("x")))

	blob, err := store.Open(ctx, "artifacts/a.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(5), blob.Size())

	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	require.NoError(t, blob.Close())

	// Partial read at an offset.
	blob, err = store.Open(ctx, "artifacts/b.bin")
	require.NoError(t, err)
	p := make([]byte, 3)
	n, err := blob.ReadAt(ctx, p, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("rld"), p)
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "artifacts/")
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"artifacts/a.bin", "artifacts/b.bin"}, names)

	// Put replaces existing content.
	require.NoError(t, store.Put(ctx, "other.bin", []byte("yy")))
	blob, err = store.Open(ctx, "other.bin")
	require.NoError(t, err)
	data, err = ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("yy"), data)
	require.NoError(t, blob.Close())

	require.NoError(t, store.Delete(ctx, "other.bin"))
	_, err = store.Open(ctx, "other.bin")
	assert.Error(t, err)

	// Deleting a missing blob is fine.
	require.NoError(t, store.Delete(ctx, "other.bin"))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestMemoryStore_PutCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", data))
	data[0] = 'z'

	blob, err := store.Open(ctx, "k")
	require.NoError(t, err)
	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}
