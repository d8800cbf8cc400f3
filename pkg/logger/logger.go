package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor pulls one attribute out of a context. Returning
// false skips the attribute for that log call.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// New creates a JSON stdout logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(newContextHandler(h, extractors...))
}

// NewNope creates a logger that discards everything. It is the default
// wherever a logger is optional.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewHandler wraps an arbitrary slog.Handler with context extraction.
// Use it when the output handler is not one of the package defaults.
func NewHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	return newContextHandler(next, extractors...)
}

// contextHandler wraps a slog.Handler and injects context-extracted
// attributes on every Handle call, so request-scoped values stay fresh.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &contextHandler{next: next, extractors: clean}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
