package cryptoalg

import (
	"context"
	"math/big"
)

// PublicKey is the public half of a textbook RSA key pair.
type PublicKey struct {
	E *big.Int
	N *big.Int
}

// PrivateKey is the private half of a textbook RSA key pair.
// It carries the modulus because storage of d alone cannot recover it.
type PrivateKey struct {
	D *big.Int
	N *big.Int
}

// KeyPair holds both halves generated together; they share N.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// Size returns the modulus length in bytes.
func (k *PublicKey) Size() int {
	return (k.N.BitLen() + 7) / 8
}

// RSAProcessor handles textbook RSA operations built on the number theory engine.
// No padding is applied: messages and digests must be smaller than the modulus.
type RSAProcessor interface {
	// GenerateKeys searches two distinct primes of bitLength/2 bits and derives the key pair.
	// The search stops with the context error when ctx is done.
	GenerateKeys(ctx context.Context, bitLength int) (*KeyPair, error)

	// Encrypt computes message^e mod n. The caller guarantees message < n.
	Encrypt(message *big.Int, publicKey *PublicKey) (*big.Int, error)

	// Decrypt computes ciphertext^d mod n.
	Decrypt(ciphertext *big.Int, privateKey *PrivateKey) (*big.Int, error)

	// Sign digests data and applies the private key transform to the digest integer.
	// The returned signature is the big-endian encoding of the signature integer.
	Sign(data []byte, privateKey *PrivateKey) ([]byte, error)

	// Verify recomputes the digest and compares it with the public key transform of signature.
	Verify(data []byte, signature []byte, publicKey *PublicKey) (bool, error)

	// SavePublicKeyToFile writes n as a PEM block labelled RSA PUBLIC KEY.
	SavePublicKeyToFile(publicKey *PublicKey, filename string) error

	// SavePrivateKeyToFile writes d as a PEM block labelled RSA PRIVATE KEY.
	SavePrivateKeyToFile(privateKey *PrivateKey, filename string) error

	// ReadPublicKey reads a public key file; e is implied.
	ReadPublicKey(publicKeyPath string) (*PublicKey, error)

	// ReadPrivateKey reads a private key file and the sibling public key file for n.
	ReadPrivateKey(privateKeyPath string) (*PrivateKey, error)
}
