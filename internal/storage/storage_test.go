package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"jobmarket_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "videos/a.webm", bytes.NewReader([]byte("data")), "video/webm"))

	ok, err := s.Exists(ctx, "videos/a.webm")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Get(ctx, "videos/a.webm")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "data", string(body))

	assert.Equal(t, "/uploads/videos/a.webm", s.URL("videos/a.webm"))

	require.NoError(t, s.Delete(ctx, "videos/a.webm"))
	require.NoError(t, s.Delete(ctx, "videos/a.webm"))

	ok, err = s.Exists(ctx, "videos/a.webm")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Get(ctx, "videos/a.webm")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(base, "")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "../../escape.txt", bytes.NewReader([]byte("x")), "text/plain"))
	ok, err := s.Exists(ctx, "escape.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Error(t, s.Save(ctx, "", bytes.NewReader(nil), "text/plain"))
}

func TestNew(t *testing.T) {
	s, err := New(config.StorageConfig{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = New(config.StorageConfig{Type: "cloudflare_r2", Bucket: "b"})
	assert.Error(t, err)

	r2, err := New(config.StorageConfig{Type: "cloudflare_r2", Bucket: "b", Endpoint: "https://acc.r2.cloudflarestorage.com", AccessKey: "k", SecretKey: "s", UseSSL: true})
	require.NoError(t, err)
	assert.Equal(t, "https://b.r2.dev/videos/x.webm", r2.URL("videos/x.webm"))

	_, err = New(config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
