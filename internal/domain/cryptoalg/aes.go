package cryptoalg

// AESProcessor handles AES symmetric encryption operations.
// AES is used for encrypting/decrypting data with a shared secret key.
// NOTE: AES does NOT support signing/verification operations - use RSA for digital signatures.
type AESProcessor interface {
	// GenerateKey generates a random AES key of the specified size.
	// Supported key sizes: 16 (AES-128), 24 (AES-192), 32 (AES-256) bytes.
	GenerateKey(keySize int) ([]byte, error)

	// Encrypt encrypts plaintext with AES-CBC and PKCS#7 padding under a fresh random IV.
	// The result is the IV followed by the ciphertext.
	Encrypt(data, key []byte) ([]byte, error)

	// Decrypt splits off the IV, decrypts and removes the padding.
	Decrypt(ciphertext, key []byte) ([]byte, error)
}
