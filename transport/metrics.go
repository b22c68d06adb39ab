package transport

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/observability"
	"github.com/kbukum/wirekit/request"
)

// WithMetrics returns a Middleware that records send counts, durations and
// failures.
func WithMetrics(metrics *observability.Metrics) Middleware {
	return func(inner Transport) Transport {
		return &metricsTransport{inner: inner, metrics: metrics}
	}
}

type metricsTransport struct {
	inner   Transport
	metrics *observability.Metrics
}

func (m *metricsTransport) Name() string { return m.inner.Name() }

func (m *metricsTransport) Send(ctx context.Context, w *request.Wire) (*Response, error) {
	name := m.inner.Name()
	m.metrics.RecordSendStart(ctx, name)

	start := time.Now()
	resp, err := m.inner.Send(ctx, w)
	duration := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	m.metrics.RecordSend(ctx, name, w.Method.String(), status, duration)

	if err != nil {
		kind := errors.KindOther
		var tf *errors.TransportFailure
		if stderrors.As(err, &tf) {
			kind = tf.Kind
		}
		m.metrics.RecordFailure(ctx, name, kind.String())
	}
	return resp, err
}
