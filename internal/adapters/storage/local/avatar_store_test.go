package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "avatars")
	store, err := NewAvatarStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), ".png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/avatars/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "http://localhost:8080/avatars/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	other, err := store.Save(context.Background(), ".png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotEqual(t, url, other)
}

func TestAvatarStore_CanceledContext(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, ".png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
