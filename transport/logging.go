package transport

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/request"
)

// WithLogging returns a Middleware that logs each Send.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner Transport) Transport {
		return &loggingTransport{inner: inner, log: log}
	}
}

type loggingTransport struct {
	inner Transport
	log   *logger.Logger
}

func (l *loggingTransport) Name() string { return l.inner.Name() }

func (l *loggingTransport) Send(ctx context.Context, w *request.Wire) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Send(ctx, w)
	duration := time.Since(start)

	fields := logger.Fields(
		logger.FieldTransport, l.inner.Name(),
		logger.FieldMethod, w.Method.String(),
		logger.FieldURL, w.URL.String(),
	)
	fields = logger.MergeWithDuration(fields, duration)

	if err != nil {
		var tf *errors.TransportFailure
		if stderrors.As(err, &tf) {
			fields["failure"] = tf.Kind.String()
		}
		l.log.Warn("transport send failed", logger.MergeWithError(fields, err))
		return resp, err
	}

	if resp != nil {
		fields[logger.FieldStatus] = resp.StatusCode
	}
	l.log.Debug("transport send ok", fields)
	return resp, nil
}
