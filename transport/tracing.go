package transport

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/observability"
	"github.com/kbukum/wirekit/request"
)

// WithTracing returns a Middleware that wraps each Send in a span.
func WithTracing(serviceName string) Middleware {
	return func(inner Transport) Transport {
		return &tracingTransport{inner: inner, serviceName: serviceName}
	}
}

type tracingTransport struct {
	inner       Transport
	serviceName string
}

func (t *tracingTransport) Name() string { return t.inner.Name() }

func (t *tracingTransport) Send(ctx context.Context, w *request.Wire) (*Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrServiceName, t.serviceName)
	observability.SetSpanAttribute(ctx, observability.AttrTransport, t.inner.Name())
	observability.SetSpanAttribute(ctx, observability.AttrHTTPMethod, w.Method.String())
	observability.SetSpanAttribute(ctx, observability.AttrURL, w.URL.String())

	resp, err := t.inner.Send(ctx, w)
	if err != nil {
		var tf *errors.TransportFailure
		if stderrors.As(err, &tf) {
			observability.SetSpanAttribute(ctx, observability.AttrFailureKind, tf.Kind.String())
		}
		observability.SetSpanError(ctx, err)
		return resp, err
	}

	if resp != nil {
		observability.SetSpanAttribute(ctx, observability.AttrStatusCode, resp.StatusCode)
	}
	return resp, nil
}
