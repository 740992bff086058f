package logging

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu       sync.RWMutex
	disabled = false
	logger   = newLogger("info", false)
)

// Init configures the backing logger. level is one of debug, info, warn,
// error; unknown levels fall back to info.
func Init(level string, development bool) {
	l := newLogger(level, development)
	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()
	_ = old.Sync()
}

func newLogger(level string, development bool) *zap.SugaredLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	// stdout belongs to command output.
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if disabled {
		return nil
	}
	return logger
}

// Disable turns off all logging
func Disable() {
	mu.Lock()
	disabled = true
	mu.Unlock()
}

// Enable turns logging back on
func Enable() {
	mu.Lock()
	disabled = false
	mu.Unlock()
}

// Sync flushes buffered entries.
func Sync() {
	if l := current(); l != nil {
		_ = l.Sync()
	}
}

// Info logs an info message
func Info(v ...any) {
	if l := current(); l != nil {
		l.Info(v...)
	}
}

// Infof logs a formatted info message
func Infof(format string, v ...any) {
	if l := current(); l != nil {
		l.Infof(format, v...)
	}
}

// Infow logs an info message with key/value pairs
func Infow(msg string, kv ...any) {
	if l := current(); l != nil {
		l.Infow(msg, kv...)
	}
}

// Error logs an error message
func Error(v ...any) {
	if l := current(); l != nil {
		l.Error(v...)
	}
}

// Errorf logs a formatted error message
func Errorf(format string, v ...any) {
	if l := current(); l != nil {
		l.Errorf(format, v...)
	}
}

// Errorw logs an error message with key/value pairs
func Errorw(msg string, kv ...any) {
	if l := current(); l != nil {
		l.Errorw(msg, kv...)
	}
}

// Warn logs a warning message
func Warn(v ...any) {
	if l := current(); l != nil {
		l.Warn(v...)
	}
}

// Warnf logs a formatted warning message
func Warnf(format string, v ...any) {
	if l := current(); l != nil {
		l.Warnf(format, v...)
	}
}

// Warnw logs a warning with key/value pairs
func Warnw(msg string, kv ...any) {
	if l := current(); l != nil {
		l.Warnw(msg, kv...)
	}
}

// Debug logs a debug message
func Debug(v ...any) {
	if l := current(); l != nil {
		l.Debug(v...)
	}
}

// Debugf logs a formatted debug message
func Debugf(format string, v ...any) {
	if l := current(); l != nil {
		l.Debugf(format, v...)
	}
}

// Debugw logs a debug message with key/value fields
func Debugw(msg string, kv ...any) {
	if l := current(); l != nil {
		l.Debugw(msg, kv...)
	}
}

// Logger is a simple logger that can be embedded in structs
type Logger struct {
	fields []any
}

// WithContext creates a new Logger (context is ignored, for API compatibility)
func WithContext(ctx context.Context) Logger {
	return Logger{}
}

// With returns a Logger that adds the key/value pairs to every entry.
func (l Logger) With(kv ...any) Logger {
	return Logger{fields: append(append([]any(nil), l.fields...), kv...)}
}

// Infof logs a formatted info message
func (l Logger) Infof(format string, v ...any) {
	if z := current(); z != nil {
		z.With(l.fields...).Infof(format, v...)
	}
}

// Warnf logs a formatted warning message
func (l Logger) Warnf(format string, v ...any) {
	if z := current(); z != nil {
		z.With(l.fields...).Warnf(format, v...)
	}
}

// Errorf logs a formatted error message
func (l Logger) Errorf(format string, v ...any) {
	if z := current(); z != nil {
		z.With(l.fields...).Errorf(format, v...)
	}
}
