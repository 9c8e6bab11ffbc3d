package logger

import (
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// FileLogger writes JSON lines to a file rotated by lumberjack.
type FileLogger struct {
	logger *slog.Logger
}

// NewFileLogger creates a file logger. maxSize is in megabytes, maxAge in days.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	return &FileLogger{logger: slog.New(slog.NewJSONHandler(writer, handlerOptions(level)))}
}

func (l *FileLogger) Debug(args ...interface{}) { l.logger.Debug(formatArgs(args...)) }
func (l *FileLogger) Info(args ...interface{})  { l.logger.Info(formatArgs(args...)) }
func (l *FileLogger) Warn(args ...interface{})  { l.logger.Warn(formatArgs(args...)) }
func (l *FileLogger) Error(args ...interface{}) { l.logger.Error(formatArgs(args...)) }
