// Package logger builds the application's slog loggers: JSON to stdout,
// optional Sentry fan-out, and per-call attribute injection from context
// so request-scoped values like request IDs appear on every line without
// threading them through call sites.
package logger
