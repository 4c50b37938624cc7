package logger_i

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger is a thin wrapper over slog so packages can hold a component-scoped
// logger without caring about handler setup.
type Logger struct {
	inner *slog.Logger
}

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		options := &slog.HandlerOptions{Level: levelFromEnv()}

		var handler slog.Handler
		if strings.EqualFold(os.Getenv("PDFCHAT_ENV"), "prod") {
			handler = slog.NewJSONHandler(os.Stdout, options)
		} else {
			handler = slog.NewTextHandler(os.Stdout, options)
		}
		slog.SetDefault(slog.New(handler))
	})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("PDFCHAT_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewLogger(component string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", component),
	}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.inner.Error(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.inner.Warn(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.inner.Debug(msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}
