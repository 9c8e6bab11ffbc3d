package logger

import (
	"io"
	"log/slog"
	"os"
)

// ConsoleLogger writes text lines to stderr so that command results on stdout stay machine readable.
type ConsoleLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a console logger for the given level setting.
func NewConsoleLogger(level string) Logger {
	return newConsoleLoggerWithWriter(level, os.Stderr)
}

func newConsoleLoggerWithWriter(level string, w io.Writer) Logger {
	return &ConsoleLogger{logger: slog.New(slog.NewTextHandler(w, handlerOptions(level)))}
}

func (l *ConsoleLogger) Debug(args ...interface{}) { l.logger.Debug(formatArgs(args...)) }
func (l *ConsoleLogger) Info(args ...interface{})  { l.logger.Info(formatArgs(args...)) }
func (l *ConsoleLogger) Warn(args ...interface{})  { l.logger.Warn(formatArgs(args...)) }
func (l *ConsoleLogger) Error(args ...interface{}) { l.logger.Error(formatArgs(args...)) }
