package keys

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CryptoKeyQuery filters, sorts and pages catalog listings
type CryptoKeyQuery struct {
	Algorithm       string    `validate:"omitempty,oneof=RSA"`
	Type            string    `validate:"omitempty,oneof=private public"`
	KeyPairID       string    `validate:"omitempty,uuid4"`
	DateTimeCreated time.Time `validate:"omitempty"`

	Limit     int    `validate:"omitempty,gt=0"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=id algorithm type key_size date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewCryptoKeyQuery creates a query returning the newest keys first
func NewCryptoKeyQuery() *CryptoKeyQuery {
	return &CryptoKeyQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating CryptoKeyQuery struct
func (q *CryptoKeyQuery) Validate() error {
	return formatValidationError(validator.New().Struct(q))
}
