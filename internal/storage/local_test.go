package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildxpert/internal/config"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	return NewLocalStorage(config.StorageConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files/",
	})
}

func TestLocalStorage_SaveAndOpen(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	url, err := store.Save(ctx, "jobs/abc/pic.png", "image/png", strings.NewReader("pixels"), 6)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/jobs/abc/pic.png", url)

	r, err := store.Open(ctx, "jobs/abc/pic.png")
	require.NoError(t, err)
	defer r.Close()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(content))
}

func TestLocalStorage_Delete(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "a.txt", "text/plain", strings.NewReader("x"), 1)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "a.txt"))

	_, err = store.Open(ctx, "a.txt")
	assert.Error(t, err)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store := newLocal(t)

	_, err := store.Save(context.Background(), "../../etc/passwd", "text/plain", strings.NewReader("x"), 1)
	assert.Error(t, err)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(config.StorageConfig{Type: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
