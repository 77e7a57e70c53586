package logger

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stores the request id and attaches a logger carrying it.
func WithRequestID(ctx context.Context, l zerolog.Logger, requestID string) (context.Context, zerolog.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	enriched := l.With().Str("request_id", requestID).Logger()
	return enriched.WithContext(ctx), enriched
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// FromContext returns the request-scoped logger, falling back to fallback when none is attached.
func FromContext(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return fallback
}
