package logger

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/yalmn/cryptomorph/internal/pkg/config"
)

// LevelCritical sits above slog.LevelError for the "critical" setting.
const LevelCritical = slog.LevelError + 4

var (
	mu       sync.Mutex
	instance Logger
)

// InitLogger sets the process-wide logger. The first successful call wins, later calls are no-ops.
// A failed call leaves the logger unset so that a corrected configuration can still be applied.
func InitLogger(settings *config.LoggerSettings) error {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return nil
	}

	l, err := New(settings)
	if err != nil {
		return err
	}
	instance = l
	return nil
}

// GetLogger returns the process-wide logger.
func GetLogger() (Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil, fmt.Errorf("logger not initialized: call InitLogger first")
	}
	return instance, nil
}

// New builds a logger from settings without touching the process-wide one.
func New(settings *config.LoggerSettings) (Logger, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch settings.LogType {
	case config.LogTypeConsole:
		return NewConsoleLogger(settings.LogLevel), nil
	case config.LogTypeFile:
		return NewFileLogger(settings.LogLevel, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.LogType)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	case config.LogLevelCritical:
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

func handlerOptions(level string) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelCritical {
					a.Value = slog.StringValue("CRITICAL")
				}
			}
			return a
		},
	}
}

func formatArgs(args ...interface{}) string {
	return fmt.Sprint(args...)
}
