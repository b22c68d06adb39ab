package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/request"
)

// HTTP sends requests with net/http.
type HTTP struct {
	client *http.Client
	name   string
}

var _ Transport = (*HTTP)(nil)

// HTTPOption configures an HTTP transport.
type HTTPOption func(*HTTP)

// WithClient replaces the underlying *http.Client.
func WithClient(c *http.Client) HTTPOption {
	return func(t *HTTP) {
		t.client = c
	}
}

// WithRoundTripper sets the round tripper used by the client.
func WithRoundTripper(rt http.RoundTripper) HTTPOption {
	return func(t *HTTP) {
		t.client.Transport = rt
	}
}

// WithTimeout caps every request made by the client, in addition to the
// per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(t *HTTP) {
		t.client.Timeout = d
	}
}

// WithName overrides the transport name.
func WithName(name string) HTTPOption {
	return func(t *HTTP) {
		t.name = name
	}
}

// NewHTTP creates a net/http transport. Timeouts come from each request,
// so the client itself has none.
func NewHTTP(opts ...HTTPOption) *HTTP {
	t := &HTTP{
		client: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		name: "http",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements Transport.
func (t *HTTP) Name() string { return t.name }

// Unwrap returns the underlying *http.Client.
func (t *HTTP) Unwrap() *http.Client { return t.client }

// CloseIdleConnections closes idle keep-alive connections.
func (t *HTTP) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}

// Send implements Transport.
func (t *HTTP) Send(ctx context.Context, w *request.Wire) (*Response, error) {
	ctx, cancel := WithRequestTimeout(ctx, w)
	defer cancel()

	req, err := w.HTTPRequest(ctx)
	if err != nil {
		return nil, errors.NewTransportFailure(errors.KindOther, fmt.Errorf("create request: %w", err))
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, Classify(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Classify(fmt.Errorf("read response body: %w", err))
	}
	if len(body) == 0 {
		body = nil
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Proto:      resp.Proto,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
