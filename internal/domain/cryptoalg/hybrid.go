package cryptoalg

// HybridProcessor seals data under a fresh AES-256 key that is itself RSA-encrypted.
//
// Envelope layout: 2-byte big-endian length L, L bytes of RSA-encrypted key,
// 16-byte IV, AES-CBC ciphertext.
type HybridProcessor interface {
	// Encrypt builds an envelope for plaintext readable only with the matching private key.
	Encrypt(plainText []byte, publicKey *PublicKey) ([]byte, error)

	// Decrypt opens an envelope produced by Encrypt.
	Decrypt(envelope []byte, privateKey *PrivateKey) ([]byte, error)
}
