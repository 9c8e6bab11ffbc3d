package cryptography

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
)

// envelopeLengthSize is the size of the big-endian length prefix of the wrapped key
const envelopeLengthSize = 2

// hybridProcessor struct that implements the HybridProcessor interface
type hybridProcessor struct {
	logger logger.Logger
	rsa    cryptoalg.RSAProcessor
	aes    cryptoalg.AESProcessor
}

// NewHybridProcessor creates a hybrid processor on top of an RSA and an AES processor
func NewHybridProcessor(logger logger.Logger, rsa cryptoalg.RSAProcessor, aes cryptoalg.AESProcessor) (cryptoalg.HybridProcessor, error) {
	if rsa == nil || aes == nil {
		return nil, fmt.Errorf("rsa and aes processors are required")
	}

	return &hybridProcessor{
		logger: logger,
		rsa:    rsa,
		aes:    aes,
	}, nil
}

// Encrypt seals plainText under a fresh AES-256 key wrapped with publicKey.
func (h *hybridProcessor) Encrypt(plainText []byte, publicKey *cryptoalg.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("public %w", cryptoalg.ErrNilKey)
	}
	// the key integer must be strictly below n
	if publicKey.N.BitLen() <= cryptoalg.AESKeySize256*8 {
		return nil, fmt.Errorf("%w: %d-bit modulus cannot wrap a 256-bit key", cryptoalg.ErrMalformedInput, publicKey.N.BitLen())
	}

	key, err := h.aes.GenerateKey(cryptoalg.AESKeySize256)
	if err != nil {
		return nil, err
	}

	wrapped, err := h.rsa.Encrypt(new(big.Int).SetBytes(key), publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap symmetric key: %w", err)
	}
	wrappedKey := wrapped.Bytes()
	if len(wrappedKey) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: wrapped key too long", cryptoalg.ErrMalformedInput)
	}

	body, err := h.aes.Encrypt(plainText, key)
	if err != nil {
		return nil, err
	}

	envelope := make([]byte, envelopeLengthSize, envelopeLengthSize+len(wrappedKey)+len(body))
	binary.BigEndian.PutUint16(envelope, uint16(len(wrappedKey)))
	envelope = append(envelope, wrappedKey...)
	envelope = append(envelope, body...)

	h.logger.Info("Hybrid encryption succeeded")
	return envelope, nil
}

// Decrypt opens an envelope produced by Encrypt.
func (h *hybridProcessor) Decrypt(envelope []byte, privateKey *cryptoalg.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private %w", cryptoalg.ErrNilKey)
	}
	if len(envelope) < envelopeLengthSize {
		return nil, fmt.Errorf("%w: envelope too short", cryptoalg.ErrMalformedInput)
	}

	keyLen := int(binary.BigEndian.Uint16(envelope))
	rest := envelope[envelopeLengthSize:]
	if keyLen == 0 || len(rest) < keyLen+cryptoalg.AESIVSize {
		return nil, fmt.Errorf("%w: truncated envelope", cryptoalg.ErrMalformedInput)
	}

	unwrapped, err := h.rsa.Decrypt(new(big.Int).SetBytes(rest[:keyLen]), privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap symmetric key: %w", err)
	}

	key, err := leftPad(unwrapped.Bytes(), cryptoalg.AESKeySize256)
	if err != nil {
		return nil, err
	}

	plain, err := h.aes.Decrypt(rest[keyLen:], key)
	if err != nil {
		return nil, err
	}

	h.logger.Info("Hybrid decryption succeeded")
	return plain, nil
}

// leftPad prepends zero bytes up to size. Leading zero bytes of the original key cannot be
// told apart from padding, so a key whose integer form is shorter is restored this way.
func leftPad(b []byte, size int) ([]byte, error) {
	if len(b) > size {
		return nil, fmt.Errorf("%w: recovered key is %d bytes, expected %d", cryptoalg.ErrMalformedInput, len(b), size)
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out, nil
}
