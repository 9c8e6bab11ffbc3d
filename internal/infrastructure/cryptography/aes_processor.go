package cryptography

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
)

// aesProcessor struct that implements the AESProcessor interface
type aesProcessor struct {
	logger logger.Logger
	random io.Reader
}

// NewAESProcessor creates and returns a new instance of aesProcessor
func NewAESProcessor(logger logger.Logger) (cryptoalg.AESProcessor, error) {
	return newAESProcessorWithRandom(logger, rand.Reader), nil
}

func newAESProcessorWithRandom(logger logger.Logger, random io.Reader) *aesProcessor {
	return &aesProcessor{
		logger: logger,
		random: random,
	}
}

// GenerateKey generates a random AES key of 16, 24 or 32 bytes.
func (a *aesProcessor) GenerateKey(keySize int) ([]byte, error) {
	if err := checkAESKeySize(keySize); err != nil {
		return nil, err
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(a.random, key); err != nil {
		return nil, fmt.Errorf("failed to generate AES key: %w", err)
	}

	a.logger.Info(fmt.Sprintf("Generated %d-bit AES key", keySize*8))
	return key, nil
}

// Encrypt encrypts data using AES-CBC with PKCS#7 padding and prepends the IV.
func (a *aesProcessor) Encrypt(data, key []byte) ([]byte, error) {
	block, err := newAESBlock(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, cryptoalg.AESIVSize)
	if _, err := io.ReadFull(a.random, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	padded := pkcs7Pad(data, aes.BlockSize)
	out := make([]byte, cryptoalg.AESIVSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[cryptoalg.AESIVSize:], padded)

	a.logger.Info("AES encryption succeeded")
	return out, nil
}

// Decrypt decrypts IV || ciphertext produced by Encrypt and strips the padding.
func (a *aesProcessor) Decrypt(ciphertext, key []byte) ([]byte, error) {
	block, err := newAESBlock(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < cryptoalg.AESIVSize+aes.BlockSize {
		return nil, fmt.Errorf("%w: ciphertext too short", cryptoalg.ErrMalformedInput)
	}

	iv := ciphertext[:cryptoalg.AESIVSize]
	body := ciphertext[cryptoalg.AESIVSize:]
	if len(body)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a multiple of the block size", cryptoalg.ErrMalformedInput)
	}

	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	a.logger.Info("AES decryption succeeded")
	return plain, nil
}

func checkAESKeySize(keySize int) error {
	switch keySize {
	case cryptoalg.AESKeySize128, cryptoalg.AESKeySize192, cryptoalg.AESKeySize256:
		return nil
	default:
		return fmt.Errorf("%w: invalid AES key size %d bytes", cryptoalg.ErrMalformedInput, keySize)
	}
}

func newAESBlock(key []byte) (cipher.Block, error) {
	if err := checkAESKeySize(len(key)); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	return block, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(append(make([]byte, 0, len(data)+padding), data...), bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padded length", cryptoalg.ErrMalformedInput)
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("%w: invalid padding", cryptoalg.ErrMalformedInput)
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("%w: invalid padding", cryptoalg.ErrMalformedInput)
		}
	}

	return data[:len(data)-padding], nil
}
