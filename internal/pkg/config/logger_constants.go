package config

// Accepted log_level values. Critical maps onto slog's error level,
// which is the strictest the sinks distinguish.
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Accepted log_type values selecting the sink implementation.
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)
