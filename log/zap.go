package log

import (
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultLogger is a global logger writing messages at InfoLevel and
	// above to os.Stdout.
	DefaultLogger = New(InfoLevel, os.Stdout)

	// DebugLogger is a global logger writing messages at DebugLevel and
	// above to os.Stdout.
	DebugLogger = New(DebugLevel, os.Stdout)

	// DiscardLogger is a no-op logger that drops every message.
	DiscardLogger Logger = discardLogger{}
)

// Log implements Logger with zap as the underlying logging library.
type Log struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	level   Level
	outputs []io.Writer
}

// enforce compilation error
var _ Logger = (*Log)(nil)

// New creates a logger that writes entries at or above the given level to
// every writer. With no writer it falls back to os.Stdout.
func New(level Level, writers ...io.Writer) *Log {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}

	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, writer := range writers {
		syncers = append(syncers, zapcore.AddSync(writer))
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(syncers...),
		toZapLevel(level),
	)

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.PanicLevel))

	return &Log{
		logger:  zapLogger,
		sugar:   zapLogger.Sugar(),
		level:   level,
		outputs: writers,
	}
}

// Debug starts a message with debug level
func (l *Log) Debug(v ...any) {
	l.sugar.Debug(v...)
}

// Debugf starts a message with debug level
func (l *Log) Debugf(format string, v ...any) {
	l.sugar.Debugf(format, v...)
}

// Info starts a message with info level
func (l *Log) Info(v ...any) {
	l.sugar.Info(v...)
}

// Infof starts a message with info level
func (l *Log) Infof(format string, v ...any) {
	l.sugar.Infof(format, v...)
}

// Warn starts a message with warn level
func (l *Log) Warn(v ...any) {
	l.sugar.Warn(v...)
}

// Warnf starts a message with warn level
func (l *Log) Warnf(format string, v ...any) {
	l.sugar.Warnf(format, v...)
}

// Error starts a message with error level
func (l *Log) Error(v ...any) {
	l.sugar.Error(v...)
}

// Errorf starts a message with error level
func (l *Log) Errorf(format string, v ...any) {
	l.sugar.Errorf(format, v...)
}

// Panic starts a new message with panic level. The panic() function
// is called which stops the ordinary flow of a goroutine.
func (l *Log) Panic(v ...any) {
	l.sugar.Panic(v...)
}

// Panicf starts a new message with panic level. The panic() function
// is called which stops the ordinary flow of a goroutine.
func (l *Log) Panicf(format string, v ...any) {
	l.sugar.Panicf(format, v...)
}

// Fatal starts a new message with fatal level. The os.Exit(1) function
// is called which terminates the program immediately.
func (l *Log) Fatal(v ...any) {
	l.sugar.Fatal(v...)
}

// Fatalf starts a new message with fatal level. The os.Exit(1) function
// is called which terminates the program immediately.
func (l *Log) Fatalf(format string, v ...any) {
	l.sugar.Fatalf(format, v...)
}

// LogLevel returns the log level being used
func (l *Log) LogLevel() Level {
	return l.level
}

// Flush syncs any file outputs. Std streams are skipped since syncing them
// fails on most platforms. Call it during graceful shutdown.
func (l *Log) Flush() error {
	var err error
	for _, output := range l.outputs {
		file, ok := output.(*os.File)
		if !ok || file == os.Stdout || file == os.Stderr {
			continue
		}
		err = multierr.Append(err, file.Sync())
	}
	return err
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case InfoLevel:
		return zapcore.InfoLevel
	case DebugLevel:
		return zapcore.DebugLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case PanicLevel:
		return zapcore.PanicLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
