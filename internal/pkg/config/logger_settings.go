package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LoggerSettings holds configuration settings for logging, including log level, type and file path
type LoggerSettings struct {
	LogLevel   string `yaml:"log_level" split_words:"true" validate:"required,oneof=info debug error warning critical"`
	LogType    string `yaml:"log_type" split_words:"true" validate:"required,oneof=console file"`
	FilePath   string `yaml:"file_path" split_words:"true"`
	MaxSize    int    `yaml:"max_size" split_words:"true"`
	MaxBackups int    `yaml:"max_backups" split_words:"true"`
	MaxAge     int    `yaml:"max_age" split_words:"true"`
}

// NewLoggerSettings returns console settings, or file settings with the default rotation when filePath is set.
func NewLoggerSettings(level, filePath string) *LoggerSettings {
	if filePath == "" {
		return &LoggerSettings{LogLevel: level, LogType: LogTypeConsole}
	}

	return &LoggerSettings{
		LogLevel:   level,
		LogType:    LogTypeFile,
		FilePath:   filePath,
		MaxSize:    DefaultLogMaxSizeMB,
		MaxBackups: DefaultLogMaxBackups,
		MaxAge:     DefaultLogMaxAgeDays,
	}
}

// Validate checks that all fields in LoggerSettings are valid
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	// Additional validation for file logger
	if s.LogType == LogTypeFile {
		if s.FilePath == "" {
			return fmt.Errorf("file path is required for file logger")
		}
		if s.MaxSize < 1 || s.MaxSize > 100 {
			return fmt.Errorf("max size must be between 1 and 100 MB")
		}
		if s.MaxBackups < 1 || s.MaxBackups > 10 {
			return fmt.Errorf("max backups must be between 1 and 10")
		}
		if s.MaxAge < 1 || s.MaxAge > 365 {
			return fmt.Errorf("max age must be between 1 and 365 days")
		}
	}

	return nil
}
