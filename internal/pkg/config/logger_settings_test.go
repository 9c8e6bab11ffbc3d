//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerSettings(t *testing.T) {
	t.Run("no file path selects the console", func(t *testing.T) {
		s := NewLoggerSettings(LogLevelWarning, "")

		assert.Equal(t, LogTypeConsole, s.LogType)
		assert.Empty(t, s.FilePath)
		assert.NoError(t, s.Validate())
	})

	t.Run("file path selects a rotated file", func(t *testing.T) {
		s := NewLoggerSettings(LogLevelDebug, "/var/log/cryptomorph.log")

		assert.Equal(t, LogTypeFile, s.LogType)
		assert.Equal(t, "/var/log/cryptomorph.log", s.FilePath)
		assert.Equal(t, DefaultLogMaxSizeMB, s.MaxSize)
		assert.Equal(t, DefaultLogMaxBackups, s.MaxBackups)
		assert.Equal(t, DefaultLogMaxAgeDays, s.MaxAge)
		assert.NoError(t, s.Validate())
	})

	t.Run("unknown level is kept and rejected on validation", func(t *testing.T) {
		s := NewLoggerSettings("trace", "")
		assert.Error(t, s.Validate())
	})
}

func TestLoggerSettings_Validate(t *testing.T) {
	fileSettings := func(mutate func(*LoggerSettings)) *LoggerSettings {
		s := NewLoggerSettings(LogLevelInfo, "/tmp/cryptomorph.log")
		mutate(s)
		return s
	}

	tests := []struct {
		name     string
		settings *LoggerSettings
		wantErr  bool
	}{
		{"critical level", NewLoggerSettings(LogLevelCritical, ""), false},
		{"missing level", &LoggerSettings{LogType: LogTypeConsole}, true},
		{"missing type", &LoggerSettings{LogLevel: LogLevelInfo}, true},
		{"unsupported type", &LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"}, true},
		{"file without path", fileSettings(func(s *LoggerSettings) { s.FilePath = "" }), true},
		{"max size zero", fileSettings(func(s *LoggerSettings) { s.MaxSize = 0 }), true},
		{"max size above limit", fileSettings(func(s *LoggerSettings) { s.MaxSize = 101 }), true},
		{"max backups above limit", fileSettings(func(s *LoggerSettings) { s.MaxBackups = 11 }), true},
		{"max age zero", fileSettings(func(s *LoggerSettings) { s.MaxAge = 0 }), true},
		{"upper bounds", fileSettings(func(s *LoggerSettings) { s.MaxSize, s.MaxBackups, s.MaxAge = 100, 10, 365 }), false},
		{"console ignores rotation", &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole, MaxSize: 500}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
