// Package log exposes the logging facade used across the node. The
// interface keeps call sites free of the underlying library; the default
// implementation wraps zap.
package log

// Logger generates leveled log lines.
type Logger interface {
	// Debug starts a new message with debug level.
	Debug(...any)
	// Debugf starts a new message with debug level.
	Debugf(string, ...any)
	// Info starts a new message with info level.
	Info(...any)
	// Infof starts a new message with info level.
	Infof(string, ...any)
	// Warn starts a new message with warn level.
	Warn(...any)
	// Warnf starts a new message with warn level.
	Warnf(string, ...any)
	// Error starts a new message with error level.
	Error(...any)
	// Errorf starts a new message with error level.
	Errorf(string, ...any)
	// Panic starts a new message with panic level and then panics.
	Panic(...any)
	// Panicf starts a new message with panic level and then panics.
	Panicf(string, ...any)
	// Fatal starts a new message with fatal level and then calls os.Exit(1).
	Fatal(...any)
	// Fatalf starts a new message with fatal level and then calls os.Exit(1).
	Fatalf(string, ...any)
	// LogLevel returns the log level being used.
	LogLevel() Level
	// Flush drains any buffered log entries.
	Flush() error
}
