package logger

// Logger is the leveled logging facade shared by the CLI, the REST server and the processors.
// Arguments are joined the way fmt.Sprint joins them.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}
