package cryptography

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/pkg/config"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
	"github.com/yalmn/cryptomorph/internal/pkg/numtheory"
)

// RSAOption configures an rsaProcessor
type RSAOption func(*rsaProcessor)

// WithRandom sets the randomness source used for prime candidates and Miller-Rabin witnesses.
func WithRandom(random io.Reader) RSAOption {
	return func(r *rsaProcessor) {
		r.random = random
	}
}

// WithConfidenceRounds sets the number of Miller-Rabin rounds applied to each candidate.
func WithConfidenceRounds(rounds int) RSAOption {
	return func(r *rsaProcessor) {
		r.rounds = rounds
	}
}

// WithDigest sets the digest used by Sign and Verify.
func WithDigest(algorithm string) RSAOption {
	return func(r *rsaProcessor) {
		r.digest = algorithm
	}
}

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger logger.Logger
	random io.Reader
	rounds int
	digest string
	e      *big.Int
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger, opts ...RSAOption) (cryptoalg.RSAProcessor, error) {
	r := &rsaProcessor{
		logger: logger,
		random: rand.Reader,
		rounds: config.DefaultConfidenceRounds,
		digest: config.DigestSHA256,
		e:      big.NewInt(cryptoalg.PublicExponent),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if r.rounds < config.DefaultConfidenceRounds {
		return nil, fmt.Errorf("confidence rounds must be at least %d, got %d", config.DefaultConfidenceRounds, r.rounds)
	}
	if _, err := newDigest(r.digest); err != nil {
		return nil, err
	}

	return r, nil
}

// GenerateKeys generates an RSA key pair whose modulus has exactly bitLength bits.
func (r *rsaProcessor) GenerateKeys(ctx context.Context, bitLength int) (*cryptoalg.KeyPair, error) {
	if bitLength < cryptoalg.MinKeyBits || bitLength > cryptoalg.MaxKeyBits {
		return nil, fmt.Errorf("%w: key size must be between %d and %d bits, got %d",
			cryptoalg.ErrMalformedInput, cryptoalg.MinKeyBits, cryptoalg.MaxKeyBits, bitLength)
	}

	pBits := bitLength / 2
	qBits := bitLength - pBits

	p, err := generatePrime(ctx, r.random, pBits, r.rounds, r.e)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prime p: %w", err)
	}

	var q *big.Int
	for q == nil || q.Cmp(p) == 0 {
		q, err = generatePrime(ctx, r.random, qBits, r.rounds, r.e)
		if err != nil {
			return nil, fmt.Errorf("failed to generate prime q: %w", err)
		}
	}

	r.logger.Debug("Found primes of ", pBits, " and ", qBits, " bits")

	keyPair, err := r.deriveKeyPair(p, q)
	if err != nil {
		return nil, err
	}

	r.logger.Info(fmt.Sprintf("Generated %d-bit RSA key pair", keyPair.Public.N.BitLen()))
	return keyPair, nil
}

// deriveKeyPair builds the key pair for two distinct primes.
func (r *rsaProcessor) deriveKeyPair(p, q *big.Int) (*cryptoalg.KeyPair, error) {
	n := new(big.Int).Mul(p, q)

	// λ = (p-1)(q-1)
	pMinusOne := new(big.Int).Sub(p, big.NewInt(1))
	qMinusOne := new(big.Int).Sub(q, big.NewInt(1))
	lambda := new(big.Int).Mul(pMinusOne, qMinusOne)

	if !numtheory.IsCoprime(r.e, lambda) {
		return nil, fmt.Errorf("%w: public exponent is not coprime with (p-1)(q-1)", cryptoalg.ErrKeyGeneration)
	}

	d, ok := numtheory.ModInverse(r.e, lambda)
	if !ok {
		return nil, fmt.Errorf("%w: public exponent has no inverse modulo (p-1)(q-1)", cryptoalg.ErrKeyGeneration)
	}

	return &cryptoalg.KeyPair{
		Public:  &cryptoalg.PublicKey{E: new(big.Int).Set(r.e), N: n},
		Private: &cryptoalg.PrivateKey{D: d, N: new(big.Int).Set(n)},
	}, nil
}

// Encrypt computes message^e mod n. Textbook RSA: message must be below n.
func (r *rsaProcessor) Encrypt(message *big.Int, publicKey *cryptoalg.PublicKey) (*big.Int, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("public %w", cryptoalg.ErrNilKey)
	}

	c, err := numtheory.ModExp(message, publicKey.E, publicKey.N)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}
	return c, nil
}

// Decrypt computes ciphertext^d mod n.
func (r *rsaProcessor) Decrypt(ciphertext *big.Int, privateKey *cryptoalg.PrivateKey) (*big.Int, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private %w", cryptoalg.ErrNilKey)
	}

	m, err := numtheory.ModExp(ciphertext, privateKey.D, privateKey.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt ciphertext: %w", err)
	}
	return m, nil
}

// Sign applies the private key transform to the digest of data.
func (r *rsaProcessor) Sign(data []byte, privateKey *cryptoalg.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private %w", cryptoalg.ErrNilKey)
	}

	digest, err := r.digestInt(data, privateKey.N)
	if err != nil {
		return nil, err
	}

	signature, err := r.Decrypt(digest, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}

	r.logger.Info("RSA signing succeeded")
	return signature.Bytes(), nil
}

// Verify recomputes the digest of data and compares it with signature^e mod n.
// A mismatch yields false without an error.
func (r *rsaProcessor) Verify(data []byte, signature []byte, publicKey *cryptoalg.PublicKey) (bool, error) {
	if publicKey == nil {
		return false, fmt.Errorf("public %w", cryptoalg.ErrNilKey)
	}

	digest, err := r.digestInt(data, publicKey.N)
	if err != nil {
		return false, err
	}

	s := new(big.Int).SetBytes(signature)
	if s.Cmp(publicKey.N) >= 0 {
		r.logger.Warn("RSA signature is out of range for the public key")
		return false, nil
	}

	recovered, err := r.Encrypt(s, publicKey)
	if err != nil {
		return false, fmt.Errorf("failed to verify signature: %w", err)
	}

	if recovered.Cmp(digest) != 0 {
		r.logger.Warn("RSA signature does not match")
		return false, nil
	}

	r.logger.Info("RSA signature verified successfully")
	return true, nil
}

// digestInt hashes data and interprets the digest as a big-endian integer below n.
func (r *rsaProcessor) digestInt(data []byte, n *big.Int) (*big.Int, error) {
	sum, err := digestSum(r.digest, data)
	if err != nil {
		return nil, err
	}

	h := new(big.Int).SetBytes(sum)
	if h.Cmp(n) >= 0 {
		return nil, fmt.Errorf("%w: digest does not fit below the modulus", cryptoalg.ErrMalformedInput)
	}
	return h, nil
}

// SavePrivateKeyToFile saves d as a PEM block readable only by the owner.
func (r *rsaProcessor) SavePrivateKeyToFile(privateKey *cryptoalg.PrivateKey, filename string) error {
	if privateKey == nil {
		return fmt.Errorf("private %w", cryptoalg.ErrNilKey)
	}
	if err := writeKeyFile(filename, cryptoalg.PrivateKeyPEMType, privateKey.D, 0600); err != nil {
		return err
	}

	r.logger.Info("Saved RSA private key ", filename)
	return nil
}

// SavePublicKeyToFile saves n as a PEM block.
func (r *rsaProcessor) SavePublicKeyToFile(publicKey *cryptoalg.PublicKey, filename string) error {
	if publicKey == nil {
		return fmt.Errorf("public %w", cryptoalg.ErrNilKey)
	}
	if err := writeKeyFile(filename, cryptoalg.PublicKeyPEMType, publicKey.N, 0644); err != nil {
		return err
	}

	r.logger.Info("Saved RSA public key ", filename)
	return nil
}

// ReadPrivateKey reads d from privateKeyPath and n from the rsa_public.key file next to it.
func (r *rsaProcessor) ReadPrivateKey(privateKeyPath string) (*cryptoalg.PrivateKey, error) {
	d, err := readKeyFile(privateKeyPath, cryptoalg.PrivateKeyPEMType)
	if err != nil {
		return nil, err
	}

	publicKey, err := r.ReadPublicKey(siblingPublicKeyPath(privateKeyPath))
	if err != nil {
		return nil, fmt.Errorf("failed to recover modulus for private key: %w", err)
	}

	return &cryptoalg.PrivateKey{D: d, N: publicKey.N}, nil
}

// ReadPublicKey reads n from publicKeyPath; e is always 65537.
func (r *rsaProcessor) ReadPublicKey(publicKeyPath string) (*cryptoalg.PublicKey, error) {
	n, err := readKeyFile(publicKeyPath, cryptoalg.PublicKeyPEMType)
	if err != nil {
		return nil, err
	}

	return &cryptoalg.PublicKey{E: big.NewInt(cryptoalg.PublicExponent), N: n}, nil
}
