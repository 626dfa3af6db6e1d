package logger

import "context"

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	OperationKey ContextKey = "operation"
)

// WithRequestID stores the request id so every log line emitted with ctx carries it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

// contextAttrs returns the logging keys carried by ctx.
func contextAttrs(ctx context.Context) []any {
	var fields []any
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		fields = append(fields, string(RequestIDKey), requestID)
	}
	if operation, ok := ctx.Value(OperationKey).(string); ok {
		fields = append(fields, string(OperationKey), operation)
	}
	return fields
}
