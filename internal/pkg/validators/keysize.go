package validators

import (
	"github.com/go-playground/validator/v10"
)

// RSA modulus bounds in bits
const (
	MinRSAKeySize = 512
	MaxRSAKeySize = 8192
)

// KeySizeValidation validates the key size in bits based on the Algorithm field of the parent struct.
// RSA moduli may have any length between MinRSAKeySize and MaxRSAKeySize; AES keys are 128, 192 or 256 bits.
func KeySizeValidation(fl validator.FieldLevel) bool {
	algorithm := fl.Parent().FieldByName("Algorithm").String()
	keySize := fl.Field().Uint()

	switch algorithm {
	case "AES":
		return keySize == 128 || keySize == 192 || keySize == 256
	case "RSA":
		return keySize >= MinRSAKeySize && keySize <= MaxRSAKeySize
	default:
		return false
	}
}
