// Package logging provides structured logging using Go's slog package.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// DocumentKey is the context key for the name of the document being processed.
	DocumentKey ContextKey = "document"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Warn level) on stderr so
	// CLI output on stdout stays clean.
	InitLogger(LevelWarn, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// ParseLevel maps a level name (debug, info, warn, error) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat maps a format name (json, text) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text", "":
		return FormatText, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

func slogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w without touching the global default.
func New(level Level, format Format, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slogLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	defaultLogger = New(level, format, os.Stderr)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// WithDocument attaches a document name to the context.
func WithDocument(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, DocumentKey, name)
}

// GetDocument retrieves the document name from the context.
func GetDocument(ctx context.Context) string {
	if name, ok := ctx.Value(DocumentKey).(string); ok {
		return name
	}
	return ""
}

// LoggerFromContext returns base (or the global logger when base is nil)
// with context values attached.
func LoggerFromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	logger := base
	if logger == nil {
		logger = defaultLogger
	}
	if name := GetDocument(ctx); name != "" {
		logger = logger.With("document", name)
	}
	return logger
}

// Helper functions for common logging patterns

// UnknownElement records an element the reader does not recognise and skips.
func UnknownElement(logger *slog.Logger, parent, local string, args ...any) {
	allArgs := []any{
		"element", local,
		"parent", parent,
	}
	allArgs = append(allArgs, args...)
	logger.Warn("unknown_element", allArgs...)
}

// Timing logs a debug-level progress notice with the elapsed time since start.
func Timing(logger *slog.Logger, operation string, start time.Time, args ...any) {
	allArgs := []any{
		"operation", operation,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	allArgs = append(allArgs, args...)
	logger.Debug("timing", allArgs...)
}

// LoadEvent logs a loader lifecycle event.
func LoadEvent(logger *slog.Logger, event, source string, args ...any) {
	allArgs := []any{
		"event", event,
		"source", source,
	}
	allArgs = append(allArgs, args...)
	logger.Info("load_event", allArgs...)
}
