// Package logging provides structured logging for the ordering service.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// Logger wraps a zerolog logger scoped to one component.
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger for a component, writing JSON to the given writer.
func New(component string, w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("component", component).
		Logger()

	return &Logger{zl: zl}
}

// NewDefault creates a logger with info level writing to stderr.
func NewDefault(component string) *Logger {
	return New(component, os.Stderr, "info")
}

// WithComponent returns a child logger for a sub-component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// Debug logs a debug message with optional key/value fields.
func (l *Logger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(ctx, l.zl.Debug(), msg, fields)
}

// Info logs an info message with optional key/value fields.
func (l *Logger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(ctx, l.zl.Info(), msg, fields)
}

// Warn logs a warning with optional key/value fields.
func (l *Logger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(ctx, l.zl.Warn(), msg, fields)
}

// Error logs an error with optional key/value fields.
func (l *Logger) Error(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	ev := l.zl.Error()
	if err != nil {
		ev = ev.Err(err)
	}
	l.emit(ctx, ev, msg, fields)
}

// LogRequest logs one completed HTTP request.
func (l *Logger) LogRequest(ctx context.Context, method, path string, status int, latency time.Duration) {
	l.emit(ctx, l.zl.Info(), "http request", map[string]interface{}{
		"method":  method,
		"path":    path,
		"status":  status,
		"latency": latency.String(),
	})
}

func (l *Logger) emit(ctx context.Context, ev *zerolog.Event, msg string, fields map[string]interface{}) {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		ev = ev.Str("trace_id", traceID)
	}
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// NewTraceID generates a new request trace ID.
func NewTraceID() string {
	return uuid.New().String()
}

// WithTraceID stores a trace ID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext extracts the trace ID, or "" when absent.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return ""
}
