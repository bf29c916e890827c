package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public") // does not exist yet
	store := NewLocalStore(root)
	ctx := context.Background()

	path, err := store.Save(ctx, []byte("jpeg bytes"), "cover.JPG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/images/books/"), "public path, got %s", path)
	assert.True(t, strings.HasSuffix(path, ".jpg"), "extension preserved lowercase, got %s", path)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(path, "/"))))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestLocalStoreSaveGeneratesUniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	first, err := store.Save(ctx, []byte("a"), "same.png")
	require.NoError(t, err)
	second, err := store.Save(ctx, []byte("b"), "same.png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStoreDeleteIfExists(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	path, err := store.Save(ctx, []byte("x"), "cover.png")
	require.NoError(t, err)

	fullPath := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	require.FileExists(t, fullPath)

	require.NoError(t, store.DeleteIfExists(ctx, path))
	assert.NoFileExists(t, fullPath)

	// Already gone: still a no-op.
	assert.NoError(t, store.DeleteIfExists(ctx, path))
}

func TestLocalStoreDeleteIgnoresEmptyPath(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	assert.NoError(t, store.DeleteIfExists(context.Background(), ""))
	assert.NoError(t, store.DeleteIfExists(context.Background(), "   "))
}
