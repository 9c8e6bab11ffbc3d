package cryptography

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/pkg/config"
)

// newDigest returns a fresh hash for one of the supported signature digests.
func newDigest(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case config.DigestSHA256:
		return sha256.New(), nil
	case config.DigestSHA3256:
		return sha3.New256(), nil
	case config.DigestBlake2b256:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("%w: unsupported digest %q", cryptoalg.ErrMalformedInput, algorithm)
	}
}

// digestSum hashes data in one shot.
func digestSum(algorithm string, data []byte) ([]byte, error) {
	h, err := newDigest(algorithm)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}
