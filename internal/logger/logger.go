// Package logger is a thin log/slog front end for the command line layer.
// Nothing is written until Init is called.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	mu            sync.RWMutex
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	logLevel      = new(slog.LevelVar)
)

// ParseLevel maps "debug", "info", "warn"/"warning" and "error"/"err" to a
// slog level. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Init points the package logger at output with the given minimum level.
// A nil output discards everything.
func Init(level slog.Level, output io.Writer) {
	if output == nil {
		output = io.Discard
	}
	logLevel.Set(level)

	opts := slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}

	mu.Lock()
	defaultLogger = slog.New(slog.NewTextHandler(output, &opts))
	mu.Unlock()
}

// OpenOutput resolves a configured log destination: "" discards, "-" is
// stderr, anything else is a file opened for appending. The returned
// closer is never nil.
func OpenOutput(path string) (io.Writer, io.Closer, error) {
	switch path {
	case "":
		return io.Discard, io.NopCloser(nil), nil
	case "-":
		return os.Stderr, io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file '%s': %w", path, err)
	}
	return f, f, nil
}

// Get returns the configured logger.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// logAtLevel logs a record carrying the caller of the exported wrapper as source.
func logAtLevel(level slog.Level, format string, args ...any) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the wrapper.
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...any) { logAtLevel(slog.LevelDebug, format, args...) }

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...any) { logAtLevel(slog.LevelInfo, format, args...) }

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...any) { logAtLevel(slog.LevelWarn, format, args...) }

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...any) { logAtLevel(slog.LevelError, format, args...) }
