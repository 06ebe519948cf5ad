package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	key := strings.Repeat("ab", 32)

	t.Run("round trips plaintext", func(t *testing.T) {
		ciphertext, err := Encrypt(key, "203.0.113.7")
		require.NoError(t, err)
		assert.NotContains(t, ciphertext, "203.0.113.7")

		plaintext, err := Decrypt(key, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.7", plaintext)
	})

	t.Run("rejects short key", func(t *testing.T) {
		_, err := Encrypt("abcd", "data")
		assert.Error(t, err)
	})

	t.Run("rejects tampered ciphertext", func(t *testing.T) {
		_, err := Decrypt(key, "bm90LXJlYWwtY2lwaGVydGV4dA==")
		assert.Error(t, err)
	})
}

func TestValidateEncryptionKey(t *testing.T) {
	assert.NoError(t, ValidateEncryptionKey(strings.Repeat("0f", 32)))
	assert.ErrorIs(t, ValidateEncryptionKey(strings.Repeat("0f", 16)), ErrInvalidKey)
	assert.Error(t, ValidateEncryptionKey(strings.Repeat("zz", 32)))
}
