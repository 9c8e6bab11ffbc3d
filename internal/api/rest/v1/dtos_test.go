//go:build unit
// +build unit

package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
)

func TestGenerateKeyRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   GenerateKeyRequest
		shouldErr bool
	}{
		{"Valid RSA 2048", GenerateKeyRequest{Algorithm: "RSA", KeySize: 2048}, false},
		{"Valid RSA 512", GenerateKeyRequest{Algorithm: "RSA", KeySize: 512}, false},
		{"Valid odd RSA size", GenerateKeyRequest{Algorithm: "RSA", KeySize: 1025}, false},
		{"Algorithm defaults to RSA", GenerateKeyRequest{KeySize: 4096}, false},
		{"RSA below minimum", GenerateKeyRequest{Algorithm: "RSA", KeySize: 256}, true},
		{"RSA above maximum", GenerateKeyRequest{Algorithm: "RSA", KeySize: 16384}, true},
		{"Missing key size", GenerateKeyRequest{Algorithm: "RSA"}, true},
		{"AES is not generated here", GenerateKeyRequest{Algorithm: "AES", KeySize: 256}, true},
		{"Invalid algorithm", GenerateKeyRequest{Algorithm: "Unknown", KeySize: 2048}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestNewCryptoKeyMetaResponse(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	meta := &keys.CryptoKeyMeta{
		ID:              "abc-123",
		KeyPairID:       "pair-123",
		Algorithm:       "RSA",
		KeySize:         2048,
		Type:            "public",
		FilePath:        "/var/lib/keys/pair-123/rsa_public.key",
		DateTimeCreated: created,
	}

	response := newCryptoKeyMetaResponse(meta)

	assert.Equal(t, "abc-123", response.ID)
	assert.Equal(t, "pair-123", response.KeyPairID)
	assert.Equal(t, uint32(2048), response.KeySize)
	assert.Equal(t, created, response.DateTimeCreated)
}

func TestNewCryptoKeyMetaListResponse_Empty(t *testing.T) {
	response := newCryptoKeyMetaListResponse(nil)

	require.NotNil(t, response)
	assert.Empty(t, response)
}
