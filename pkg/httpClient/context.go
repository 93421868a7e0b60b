package httpClient

import "context"

// traceIDKey 是追蹤ID在上下文中的鍵名稱
type traceIDKey struct{}

// WithTraceID 將追蹤ID添加到上下文中
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// GetTraceID 從上下文中獲取追蹤ID
func GetTraceID(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(traceIDKey{}).(string)
	return traceID, ok && traceID != ""
}
