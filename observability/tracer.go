package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/wirekit"

// Span names.
const (
	SpanHTTPRequest = "http.request"
	SpanExecute     = "wirekit.execute"
)

// Attribute keys set by the manager and the transport middleware.
const (
	AttrServiceName = "service.name"
	AttrTransport   = "wirekit.transport"
	AttrRequestID   = "request.id"
	AttrHTTPMethod  = "http.request.method"
	AttrURL         = "url.full"
	AttrStatusCode  = "http.response.status_code"
	AttrFailureKind = "wirekit.failure"
	AttrErrorCode   = "wirekit.error_code"
)

// StartSpan starts a span on the wirekit tracer of the global provider.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// SetSpanAttribute sets key on the span carried by ctx. Values of
// unsupported types are dropped.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if kv, ok := toAttribute(key, value); ok {
		span.SetAttributes(kv)
	}
}

// SetSpanError records err on the span carried by ctx and marks the span
// failed.
func SetSpanError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func toAttribute(key string, value any) (attribute.KeyValue, bool) {
	k := attribute.Key(key)
	switch v := value.(type) {
	case string:
		return k.String(v), true
	case int:
		return k.Int(v), true
	case int64:
		return k.Int64(v), true
	case float64:
		return k.Float64(v), true
	case bool:
		return k.Bool(v), true
	case []string:
		return k.StringSlice(v), true
	case time.Duration:
		return k.Int64(v.Milliseconds()), true
	case fmt.Stringer:
		return k.String(v.String()), true
	}
	return attribute.KeyValue{}, false
}
