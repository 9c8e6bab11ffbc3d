package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CRYPTOMORPH_PORT
const EnvPrefix = "CRYPTOMORPH"

// RestConfig holds the configuration of the REST API
type RestConfig struct {
	Port     string           `yaml:"port" validate:"required,numeric"`
	KeyDir   string           `yaml:"key_dir" split_words:"true" validate:"required"`
	Database DatabaseSettings `yaml:"database"`
	Logger   LoggerSettings   `yaml:"logger"`
	Crypto   CryptoSettings   `yaml:"crypto"`
}

// NewRestConfig returns a configuration usable without any file: SQLite catalog in the key directory.
func NewRestConfig() *RestConfig {
	return &RestConfig{
		Port:   "8080",
		KeyDir: "./keys",
		Database: DatabaseSettings{
			Type: SqliteDbType,
			DSN:  "./keys/catalog.db",
		},
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
		Crypto: *NewCryptoSettings(),
	}
}

// InitializeRestConfig loads defaults, the optional YAML file at path and environment overrides, then validates.
func InitializeRestConfig(path string) (*RestConfig, error) {
	cfg := NewRestConfig()

	if path != "" {
		content, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the REST settings and every nested settings block
func (c *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return c.Crypto.Validate()
}
