// Package observability provides OpenTelemetry tracing and metrics for
// wirekit transports.
//
// Spans and instruments are recorded against the global providers.
// Setup installs OTLP/HTTP-exporting ones:
//
//	exp, err := observability.Setup(ctx, observability.ExportConfig{
//		ServiceName: "orders-client",
//		Endpoint:    "localhost:4318",
//		Insecure:    true,
//	})
//	defer exp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest)
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("orders-client"))
//	metrics.RecordSend(ctx, "http", "GET", 200, duration)
package observability
