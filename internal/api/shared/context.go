package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type of request context keys set by the API layer.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID stores traceID in ctx, generating one when traceID is empty.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
