package logging

import (
	"context"
	"time"
)

// Canonical field keys.
const (
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldDrug      = "drug"
	FieldDuration  = "duration_ms"
	FieldRows      = "rows"
)

type ctxKey struct{}

// WithRequestID stores a request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFromContext returns the id stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// FromContext returns l with the request id of ctx attached, if any.
func FromContext(ctx context.Context, l Logger) Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.With(String(FieldRequestID, id))
	}
	return l
}

// LogDatabaseQuery records the outcome of one catalog query. Failures are
// logged at error level, slow queries (over 500ms) at warn.
func LogDatabaseQuery(l Logger, operation string, elapsed time.Duration, rows int, err error) {
	fields := []Field{
		String(FieldOperation, operation),
		Int64(FieldDuration, elapsed.Milliseconds()),
		Int(FieldRows, rows),
	}
	switch {
	case err != nil:
		l.Error("database query failed", append(fields, Err(err))...)
	case elapsed > 500*time.Millisecond:
		l.Warn("slow database query", fields...)
	default:
		l.Debug("database query completed", fields...)
	}
}

//Personal.AI order the ending
