package trace

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HeaderName is the HTTP header carrying the trace id.
const HeaderName = "X-Trace-ID"

type ctxKey struct{}

// GenerateTraceID 生成一个新的 trace ID
func GenerateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FromContext 从 context 中获取 trace_id
func FromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(ctxKey{}).(string); ok {
		return traceID
	}
	return ""
}

// WithContext 将 trace_id 添加到 context 中
func WithContext(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// FromHeader returns the incoming trace id or a fresh one when the header is
// empty or unreasonably long.
func FromHeader(headerValue string) string {
	if headerValue != "" && len(headerValue) <= 128 {
		return headerValue
	}
	return GenerateTraceID()
}
