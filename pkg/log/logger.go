package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// slogLogger adapts *slog.Logger to the package Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = &slogLogger{l: slog.Default()}
	levelVar      slog.LevelVar
)

// SetupLogger installs a JSON slog handler writing to standard output as the
// package default, filtered at the given level ("debug", "info", "warn",
// "error"). Unknown level strings fall back to info.
func SetupLogger(loglevel string) {
	levelVar.Set(slog.Level(ToLogLevel(loglevel)))
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: &levelVar,
	})

	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = &slogLogger{l: slog.New(handler)}
}

// ToLogLevel converts a level string to a Level.
func ToLogLevel(level string) Level {
	switch level {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLogger replaces the package default logger. Useful in tests.
func SetLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// GetLogger returns the package default logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns the default logger with a component field
// pre-populated.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// ErrAttr wraps err so it renders as a structured attribute.
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
