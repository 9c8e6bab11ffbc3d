package cryptoalg

import "errors"

var (
	// ErrKeyGeneration is returned when a generated key would violate e*d ≡ 1 (mod λ).
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrMalformedInput is returned for bad key lengths, truncated envelopes and undecodable key files.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNilKey is returned when an operation receives no key material.
	ErrNilKey = errors.New("key cannot be nil")
)
