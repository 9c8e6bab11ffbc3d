package config

// Accepted values of LoggerSettings.LogLevel, from most to least verbose
const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Accepted values of LoggerSettings.LogType
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation applied when a log file is requested without explicit limits
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)
