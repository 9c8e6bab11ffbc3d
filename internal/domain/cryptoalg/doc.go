// Package cryptoalg defines the core interfaces and structures for textbook RSA and the
// hybrid RSA + AES workflow: key material, key generation, encryption, decryption,
// signing, verification and the errors these operations report.
package cryptoalg
