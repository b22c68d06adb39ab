package transport

import (
	"context"
	"net/http"

	"github.com/kbukum/wirekit/request"
)

// Transport sends a wire request. A successful Send returns the raw
// response regardless of status code. Failures are *errors.TransportFailure.
type Transport interface {
	// Name identifies the transport in logs and metrics.
	Name() string
	// Send performs the request.
	Send(ctx context.Context, w *request.Wire) (*Response, error)
}

// Response is a raw response as received from the server.
type Response struct {
	// StatusCode is the HTTP status; 0 means the response was not HTTP.
	StatusCode int
	// Proto is the protocol version, e.g. "HTTP/1.1".
	Proto string
	// Header holds the response headers.
	Header http.Header
	// Body is the complete response body (nil when absent).
	Body []byte
}

// IsHTTP reports whether the response carries an HTTP status.
func (r *Response) IsHTTP() bool {
	return r != nil && r.StatusCode > 0
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, w *request.Wire) (*Response, error)

var _ Transport = Func(nil)

// Name implements Transport.
func (f Func) Name() string { return "func" }

// Send implements Transport.
func (f Func) Send(ctx context.Context, w *request.Wire) (*Response, error) {
	return f(ctx, w)
}

// WithRequestTimeout bounds ctx by the request timeout, if any. Every
// Transport applies it so a descriptor timeout behaves the same on any
// sender.
func WithRequestTimeout(ctx context.Context, w *request.Wire) (context.Context, context.CancelFunc) {
	if w.Timeout > 0 {
		return context.WithTimeout(ctx, w.Timeout)
	}
	return context.WithCancel(ctx)
}
