package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PostgresDbType selects the PostgreSQL key catalog backend
const PostgresDbType = "postgres"

// SqliteDbType selects the SQLite key catalog backend
const SqliteDbType = "sqlite"

// DatabaseSettings holds the connection settings of the key catalog
type DatabaseSettings struct {
	Type string `yaml:"type" validate:"required,oneof=postgres sqlite"`
	DSN  string `yaml:"dsn" validate:"required"`
	// Name is created on first connect when set (PostgreSQL only)
	Name string `yaml:"name"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	return nil
}
