// Package logger provides the ambient logging surface of the
// cryptography façade: a console sink for interactive use (CLI, tests)
// and a rotating file sink for long-running services, selected through
// the logger settings and shared process-wide via InitLogger.
package logger

// Logger is the logging interface the façade, the provider services
// and the command handlers write to.
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
