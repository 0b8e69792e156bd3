package tracing

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
)

// RequestHeader carries the request ID in both directions.
const RequestHeader = "X-Request-ID"

const maxInboundIDLength = 128

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID returns a context carrying the request ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID retrieves the request ID from context
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// resolveRequestID keeps a caller-supplied ID when it is sane and mints one
// otherwise.
func resolveRequestID(inbound string) string {
	if inbound != "" && len(inbound) <= maxInboundIDLength {
		return inbound
	}
	return id.NewRequestID().String()
}
