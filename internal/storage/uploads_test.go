package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brookfield-academy/site-server-go/internal/config"
)

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Endpoint:  "storage.example.com",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "school-media",
		Region:    "us-east-1",
		UseSSL:    true,
	}
}

func TestExtensionForContentType(t *testing.T) {
	ext, ok := ExtensionForContentType("image/jpeg")
	assert.True(t, ok)
	assert.Equal(t, ".jpg", ext)

	ext, ok = ExtensionForContentType(" IMAGE/PNG ")
	assert.True(t, ok)
	assert.Equal(t, ".png", ext)

	_, ok = ExtensionForContentType("application/x-msdownload")
	assert.False(t, ok)
}

func TestUploadSigner_SignUpload(t *testing.T) {
	signer, err := NewUploadSigner(testStorageConfig())
	require.NoError(t, err)

	fixed := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return fixed }

	t.Run("issues a presigned PUT url", func(t *testing.T) {
		handle, err := signer.SignUpload(context.Background(), "image/webp")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(handle.ObjectKey, "gallery/2026/10/"))
		assert.True(t, strings.HasSuffix(handle.ObjectKey, ".webp"))
		assert.Equal(t, fixed.Add(config.UploadURLLifetime), handle.ExpiresAt)
		assert.Equal(t, "https://storage.example.com/school-media/"+handle.ObjectKey, handle.PublicURL)

		u, err := url.Parse(handle.UploadURL)
		require.NoError(t, err)
		assert.Equal(t, "storage.example.com", u.Host)
		assert.Contains(t, u.Path, handle.ObjectKey)
		assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
		assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	})

	t.Run("each upload gets a distinct key", func(t *testing.T) {
		a, err := signer.SignUpload(context.Background(), "image/png")
		require.NoError(t, err)
		b, err := signer.SignUpload(context.Background(), "image/png")
		require.NoError(t, err)
		assert.NotEqual(t, a.ObjectKey, b.ObjectKey)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		_, err := signer.SignUpload(context.Background(), "text/html")
		assert.Error(t, err)
	})

	t.Run("uses configured public base url", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.PublicBaseURL = "https://cdn.example.com/"
		s, err := NewUploadSigner(cfg)
		require.NoError(t, err)

		handle, err := s.SignUpload(context.Background(), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/"+handle.ObjectKey, handle.PublicURL)
	})
}
