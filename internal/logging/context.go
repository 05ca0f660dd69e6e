// Package logging carries correlation IDs through contexts so every
// log line can be tied back to the file and playback session it
// belongs to.
package logging

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	fileKey ctxKey = iota
	sessionIDKey
	revisionKey
)

// WithFile returns a context with the analyzed file path set.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, fileKey, file)
}

// WithSessionID returns a context with the playback session ID set.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// WithRevision returns a context with the code-map revision set.
func WithRevision(ctx context.Context, revision string) context.Context {
	return context.WithValue(ctx, revisionKey, revision)
}

// File extracts the file path from the context, or "" if absent.
func File(ctx context.Context) string {
	v, _ := ctx.Value(fileKey).(string)
	return v
}

// SessionID extracts the playback session ID from the context, or "" if absent.
func SessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// Revision extracts the code-map revision from the context, or "" if absent.
func Revision(ctx context.Context) string {
	v, _ := ctx.Value(revisionKey).(string)
	return v
}

// LogWith returns a logger enriched with correlation IDs from the context.
// Only non-empty values are added as attributes.
func LogWith(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if file := File(ctx); file != "" {
		logger = logger.With(slog.String("file", file))
	}
	if sid := SessionID(ctx); sid != "" {
		logger = logger.With(slog.String("session_id", sid))
	}
	if rev := Revision(ctx); rev != "" {
		logger = logger.With(slog.String("revision", rev))
	}
	return logger
}

// CorrelationHandler wraps an slog.Handler, automatically injecting
// correlation IDs from the context into every log record.
// Use with slog.New(NewCorrelationHandler(inner)) so callers can use
// logger.InfoContext(ctx, ...) and IDs appear automatically.
type CorrelationHandler struct {
	inner slog.Handler
}

// NewCorrelationHandler wraps the given handler with automatic correlation ID injection.
func NewCorrelationHandler(inner slog.Handler) *CorrelationHandler {
	return &CorrelationHandler{inner: inner}
}

func (h *CorrelationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *CorrelationHandler) Handle(ctx context.Context, r slog.Record) error {
	if v := File(ctx); v != "" {
		r.AddAttrs(slog.String("file", v))
	}
	if v := SessionID(ctx); v != "" {
		r.AddAttrs(slog.String("session_id", v))
	}
	if v := Revision(ctx); v != "" {
		r.AddAttrs(slog.String("revision", v))
	}
	return h.inner.Handle(ctx, r)
}

func (h *CorrelationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CorrelationHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *CorrelationHandler) WithGroup(name string) slog.Handler {
	return &CorrelationHandler{inner: h.inner.WithGroup(name)}
}
