package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "observability_request_id"
	callerIDKey  contextKey = "observability_caller_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithCallerID records the Discord user ID behind an authenticated
// interaction for downstream log correlation.
func WithCallerID(ctx context.Context, callerID string) context.Context {
	if ctx == nil || callerID == "" {
		return ctx
	}
	return context.WithValue(ctx, callerIDKey, callerID)
}

func CallerIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(callerIDKey).(string)
	return value
}
