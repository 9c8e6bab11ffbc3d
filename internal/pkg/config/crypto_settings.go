package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Digest algorithm identifiers accepted for signing
const (
	DigestSHA256     = "sha256"
	DigestSHA3256    = "sha3-256"
	DigestBlake2b256 = "blake2b-256"
)

// DefaultConfidenceRounds is the Miller-Rabin round count used for prime search
const DefaultConfidenceRounds = 10

// CryptoSettings tunes the RSA engine
type CryptoSettings struct {
	ConfidenceRounds int           `yaml:"confidence_rounds" split_words:"true" validate:"gte=10,lte=128"`
	Digest           string        `yaml:"digest" validate:"required,oneof=sha256 sha3-256 blake2b-256"`
	KeyGenTimeout    time.Duration `yaml:"key_gen_timeout" split_words:"true" validate:"gte=0"`
}

// NewCryptoSettings returns the default engine settings
func NewCryptoSettings() *CryptoSettings {
	return &CryptoSettings{
		ConfidenceRounds: DefaultConfidenceRounds,
		Digest:           DigestSHA256,
		KeyGenTimeout:    5 * time.Minute,
	}
}

// Validate checks that all fields in CryptoSettings are valid
func (s *CryptoSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CryptoSettings: %w", err)
	}

	return nil
}
