package logtrace

import (
	"context"
)

type requestIdContextKey string

const requestIdKey = requestIdContextKey("requestId")

// WithRequestId returns a context carrying the given request id.
func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdKey, id)
}

// RequestIdFromContext extracts the request id from the context.
// Returns an empty string if the context is nil or carries no id.
func RequestIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	r, ok := ctx.Value(requestIdKey).(string)
	if !ok {
		return ""
	}
	return r
}
