//go:build unit
// +build unit

package cryptography

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/pkg/testutil"
)

const (
	TestAESKey128 = 16
	TestAESKey256 = 32
)

func setupAESProcessor(t *testing.T) cryptoalg.AESProcessor {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	processor, err := NewAESProcessor(logger)
	require.NoError(t, err)
	return processor
}

func TestAESProcessor(t *testing.T) {
	processor := setupAESProcessor(t)

	t.Run("EncryptDecrypt", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey256)
		assert.NoError(t, err)

		plainText := []byte("This is a test message.")

		ciphertext, err := processor.Encrypt(plainText, key)
		assert.NoError(t, err)
		assert.Len(t, ciphertext, cryptoalg.AESIVSize+32)

		decryptedText, err := processor.Decrypt(ciphertext, key)
		assert.NoError(t, err)
		assert.Equal(t, plainText, decryptedText)
	})

	t.Run("BlockAlignedAndEmptyInput", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey128)
		require.NoError(t, err)

		for _, plainText := range [][]byte{{}, bytes.Repeat([]byte{'a'}, 16), bytes.Repeat([]byte{'b'}, 1000)} {
			ciphertext, err := processor.Encrypt(plainText, key)
			require.NoError(t, err)
			// a full padding block is added to aligned input
			assert.Equal(t, cryptoalg.AESIVSize+(len(plainText)/16+1)*16, len(ciphertext))

			decrypted, err := processor.Decrypt(ciphertext, key)
			require.NoError(t, err)
			assert.Equal(t, len(plainText), len(decrypted))
			assert.True(t, bytes.Equal(plainText, decrypted))
		}
	})

	t.Run("FreshIVPerEncryption", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey256)
		require.NoError(t, err)

		first, err := processor.Encrypt([]byte("same"), key)
		require.NoError(t, err)
		second, err := processor.Encrypt([]byte("same"), key)
		require.NoError(t, err)

		assert.NotEqual(t, first[:cryptoalg.AESIVSize], second[:cryptoalg.AESIVSize])
	})

	t.Run("EncryptionWithInvalidKey", func(t *testing.T) {
		key := []byte("shortkey")
		plainText := []byte("This is a test.")

		_, err := processor.Encrypt(plainText, key)
		assert.ErrorIs(t, err, cryptoalg.ErrMalformedInput)
	})

	t.Run("GenerateKey", func(t *testing.T) {
		for _, size := range []int{cryptoalg.AESKeySize128, cryptoalg.AESKeySize192, cryptoalg.AESKeySize256} {
			key, err := processor.GenerateKey(size)
			assert.NoError(t, err)
			assert.Len(t, key, size)
		}

		_, err := processor.GenerateKey(20)
		assert.ErrorIs(t, err, cryptoalg.ErrMalformedInput)
	})

	t.Run("DecryptWithWrongKey", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey128)
		assert.NoError(t, err)

		plainText := []byte("Test decryption with wrong key.")
		ciphertext, err := processor.Encrypt(plainText, key)
		assert.NoError(t, err)

		wrongKey, err := processor.GenerateKey(TestAESKey128)
		assert.NoError(t, err)

		decrypted, err := processor.Decrypt(ciphertext, wrongKey)

		if err == nil {
			assert.NotEqual(t, plainText, decrypted, "Decryption with wrong key should not return original message")
		} else {
			assert.ErrorIs(t, err, cryptoalg.ErrMalformedInput)
		}
	})

	t.Run("DecryptShortCiphertext", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey128)
		assert.NoError(t, err)

		_, err = processor.Decrypt([]byte("short"), key)
		assert.ErrorIs(t, err, cryptoalg.ErrMalformedInput)
	})

	t.Run("DecryptUnalignedCiphertext", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey128)
		require.NoError(t, err)

		_, err = processor.Decrypt(make([]byte, cryptoalg.AESIVSize+17), key)
		assert.ErrorIs(t, err, cryptoalg.ErrMalformedInput)
	})
}

func TestPKCS7(t *testing.T) {
	t.Run("Pad", func(t *testing.T) {
		assert.Equal(t, []byte{'a', 3, 3, 3}, pkcs7Pad([]byte{'a'}, 4))
		assert.Equal(t, []byte{'a', 'b', 'c', 'd', 4, 4, 4, 4}, pkcs7Pad([]byte("abcd"), 4))
	})

	t.Run("Unpad", func(t *testing.T) {
		out, err := pkcs7Unpad([]byte{'a', 3, 3, 3}, 4)
		require.NoError(t, err)
		assert.Equal(t, []byte{'a'}, out)
	})

	t.Run("UnpadInvalid", func(t *testing.T) {
		for _, in := range [][]byte{{}, {'a', 'b', 'c', 0}, {'a', 'b', 2, 3}, {'a', 'b', 'c', 5}, {'a', 'b'}} {
			_, err := pkcs7Unpad(in, 4)
			assert.ErrorIs(t, err, cryptoalg.ErrMalformedInput)
		}
	})
}
