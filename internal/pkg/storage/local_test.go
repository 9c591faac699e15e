package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDownloadList(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader(`{"ok":true}`), "backups/b.json", "application/json")
	require.NoError(t, err)
	assert.Equal(t, "backups/b.json", path)

	_, err = s.Upload(ctx, strings.NewReader("x"), "backups/a.json", "application/json")
	require.NoError(t, err)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))

	paths, err := s.List(ctx, "backups")
	require.NoError(t, err)
	assert.Equal(t, []string{"backups/a.json", "backups/b.json"}, paths)

	url, err := s.GetURL(ctx, path, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/backups/b.json", url)

	require.NoError(t, s.Delete(ctx, path))
	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_ListMissingPrefix(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	paths, err := s.List(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "../escape.txt", "text/plain")
	assert.Error(t, err)
}
