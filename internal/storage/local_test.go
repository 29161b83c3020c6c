package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(Config{
		Type:     "local",
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8000/files",
	})
	require.NoError(t, err)
	return store
}

func TestLocalStorageSaveExistsDelete(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	key := "users/u1/abc_photo.png"
	require.NoError(t, store.Save(ctx, key, strings.NewReader("data"), "image/png"))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, key))

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStorageURLRoundTrip(t *testing.T) {
	store := newTestLocalStorage(t)

	key := "shelters/s1/abc_front.jpg"
	url := store.GetURL(key)
	assert.Equal(t, "http://localhost:8000/files/shelters/s1/abc_front.jpg", url)

	got, ok := store.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, key, got)

	_, ok = store.KeyFromURL("https://elsewhere.example/other.jpg")
	assert.False(t, ok)
}
