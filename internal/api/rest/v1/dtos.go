package v1

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/pkg/validators"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// GenerateKeyRequest asks for a new RSA key pair
type GenerateKeyRequest struct {
	Algorithm string `json:"algorithm" validate:"omitempty,oneof=RSA"`
	KeySize   uint32 `json:"key_size" validate:"required,keySizeValidation"`
}

// Validate for validating GenerateKeyRequest struct
func (r *GenerateKeyRequest) Validate() error {
	if r.Algorithm == "" {
		r.Algorithm = "RSA"
	}

	validate := validator.New()
	if err := validate.RegisterValidation("keySizeValidation", validators.KeySizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// CryptoKeyMetaResponse describes one catalog entry
type CryptoKeyMetaResponse struct {
	ID              string    `json:"id"`
	KeyPairID       string    `json:"key_pair_id"`
	Algorithm       string    `json:"algorithm"`
	KeySize         uint32    `json:"key_size"`
	Type            string    `json:"type"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// VerifyResponse reports the outcome of a signature check
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

func newCryptoKeyMetaResponse(meta *keys.CryptoKeyMeta) CryptoKeyMetaResponse {
	return CryptoKeyMetaResponse{
		ID:              meta.ID,
		KeyPairID:       meta.KeyPairID,
		Algorithm:       meta.Algorithm,
		KeySize:         meta.KeySize,
		Type:            meta.Type,
		DateTimeCreated: meta.DateTimeCreated,
	}
}

func newCryptoKeyMetaListResponse(metas []*keys.CryptoKeyMeta) []CryptoKeyMetaResponse {
	listResponse := []CryptoKeyMetaResponse{}
	for _, meta := range metas {
		listResponse = append(listResponse, newCryptoKeyMetaResponse(meta))
	}
	return listResponse
}
