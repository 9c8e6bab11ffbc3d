package models

import (
	"time"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
)

// CryptoKeyModel is the GORM database model for catalog entries (infrastructure concern)
type CryptoKeyModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	KeyPairID       string    `gorm:"not null;index;type:varchar(36)"`
	Algorithm       string    `gorm:"type:varchar(20)"`
	KeySize         uint32    `gorm:"type:integer"`
	Type            string    `gorm:"type:varchar(20)"`
	FilePath        string    `gorm:"not null;type:varchar(1024)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (CryptoKeyModel) TableName() string {
	return "crypto_keys"
}

// ToDomain converts GORM model to domain entity
func (m *CryptoKeyModel) ToDomain() *keys.CryptoKeyMeta {
	return &keys.CryptoKeyMeta{
		ID:              m.ID,
		KeyPairID:       m.KeyPairID,
		Algorithm:       m.Algorithm,
		KeySize:         m.KeySize,
		Type:            m.Type,
		FilePath:        m.FilePath,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CryptoKeyModel) FromDomain(k *keys.CryptoKeyMeta) {
	m.ID = k.ID
	m.KeyPairID = k.KeyPairID
	m.Algorithm = k.Algorithm
	m.KeySize = k.KeySize
	m.Type = k.Type
	m.FilePath = k.FilePath
	m.DateTimeCreated = k.DateTimeCreated
}
