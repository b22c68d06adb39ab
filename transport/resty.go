package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/wirekit/request"
)

// Resty sends requests with go-resty.
type Resty struct {
	client *resty.Client
}

var _ Transport = (*Resty)(nil)

// RestyOption configures a Resty transport.
type RestyOption func(*resty.Client)

// WithRestyRoundTripper sets the round tripper used by the resty client.
func WithRestyRoundTripper(rt http.RoundTripper) RestyOption {
	return func(c *resty.Client) {
		c.SetTransport(rt)
	}
}

// WithRestyTimeout caps every request made by the resty client.
func WithRestyTimeout(d time.Duration) RestyOption {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// NewResty creates a resty-backed transport.
func NewResty(opts ...RestyOption) *Resty {
	c := resty.New()
	for _, opt := range opts {
		opt(c)
	}
	return &Resty{client: c}
}

// NewRestyFromClient wraps an existing resty client.
func NewRestyFromClient(c *resty.Client) *Resty {
	return &Resty{client: c}
}

// Name implements Transport.
func (t *Resty) Name() string { return "resty" }

// Client returns the underlying resty client.
func (t *Resty) Client() *resty.Client { return t.client }

// CloseIdleConnections closes idle keep-alive connections.
func (t *Resty) CloseIdleConnections() {
	t.client.GetClient().CloseIdleConnections()
}

// Send implements Transport.
func (t *Resty) Send(ctx context.Context, w *request.Wire) (*Response, error) {
	ctx, cancel := WithRequestTimeout(ctx, w)
	defer cancel()

	req := t.client.R().SetContext(ctx)
	req.Header = w.Header.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	if w.Body != nil {
		req.SetBody(w.Body)
	}

	resp, err := req.Execute(w.Method.String(), w.URL.String())
	if err != nil {
		return nil, Classify(err)
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}
	if resp.RawResponse != nil {
		out.Proto = resp.RawResponse.Proto
	}
	if len(out.Body) == 0 {
		out.Body = nil
	}
	return out, nil
}
