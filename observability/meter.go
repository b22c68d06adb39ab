package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded around transport sends.
type Metrics struct {
	sendTotal    metric.Int64Counter
	sendDuration metric.Float64Histogram
	sendActive   metric.Int64UpDownCounter
	failureTotal metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	sendTotal, err := meter.Int64Counter("wirekit.send.total",
		metric.WithDescription("Total number of requests sent through a transport"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wirekit.send.total counter: %w", err)
	}

	sendDuration, err := meter.Float64Histogram("wirekit.send.duration",
		metric.WithDescription("Duration of transport sends in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wirekit.send.duration histogram: %w", err)
	}

	sendActive, err := meter.Int64UpDownCounter("wirekit.send.active",
		metric.WithDescription("Number of sends in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wirekit.send.active counter: %w", err)
	}

	failureTotal, err := meter.Int64Counter("wirekit.failure.total",
		metric.WithDescription("Transport failures by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wirekit.failure.total counter: %w", err)
	}

	return &Metrics{
		sendTotal:    sendTotal,
		sendDuration: sendDuration,
		sendActive:   sendActive,
		failureTotal: failureTotal,
	}, nil
}

// RecordSendStart increments the in-flight count.
func (m *Metrics) RecordSendStart(ctx context.Context, transport string) {
	m.sendActive.Add(ctx, 1, metric.WithAttributes(attribute.String("transport", transport)))
}

// RecordSend decrements the in-flight count and records a completed send.
// status is the HTTP status code, 0 when no response was obtained.
func (m *Metrics) RecordSend(ctx context.Context, transport, method string, status int, duration time.Duration) {
	m.sendActive.Add(ctx, -1, metric.WithAttributes(attribute.String("transport", transport)))
	m.sendTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transport", transport),
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.sendDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("transport", transport),
		attribute.String("method", method),
	))
}

// RecordFailure records a transport failure by kind.
func (m *Metrics) RecordFailure(ctx context.Context, transport, kind string) {
	m.failureTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transport", transport),
		attribute.String("kind", kind),
	))
}
