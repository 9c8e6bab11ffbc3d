package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yalmn/cryptomorph/internal/pkg/validators"
)

// ErrKeyNotFound is returned when no key metadata exists for an ID
var ErrKeyNotFound = errors.New("cryptographic key not found")

// CryptoKeyMeta describes one key file of the catalog. Both halves of a generated
// pair are registered separately and share KeyPairID.
type CryptoKeyMeta struct {
	ID              string    `validate:"required,uuid4"`
	KeyPairID       string    `validate:"required,uuid4"`
	Algorithm       string    `validate:"required,oneof=RSA"`
	KeySize         uint32    `validate:"keySizeValidation"`
	Type            string    `validate:"required,oneof=private public"`
	FilePath        string    `validate:"required,min=1,max=1024"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating CryptoKeyMeta struct
func (k *CryptoKeyMeta) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keySizeValidation", validators.KeySizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	return formatValidationError(validate.Struct(k))
}

func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}
