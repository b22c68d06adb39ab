package mock

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/request"
	"github.com/kbukum/wirekit/transport"
)

// DefaultProto is the protocol reported by declared responses.
const DefaultProto = "HTTP/1.1"

// Exchange validation errors.
var (
	ErrNoRequest         = stderrors.New("mock: exchange has no reference request")
	ErrEmptyExchange     = stderrors.New("mock: exchange has neither response nor failure")
	ErrAmbiguousExchange = stderrors.New("mock: exchange has both response and failure")
)

// ServerResponse is a canned response returned for a matched exchange.
type ServerResponse struct {
	// StatusCode is the HTTP status; 0 means 200.
	StatusCode int
	// Proto is the protocol version; empty means DefaultProto.
	Proto string
	// Body is the raw body; nil means none.
	Body []byte
	// Header holds the response headers.
	Header map[string]string
}

// Respond declares a response with the given status and body.
func Respond(status int, body []byte) *ServerResponse {
	return &ServerResponse{StatusCode: status, Proto: DefaultProto, Body: body}
}

// JSONBody encodes v with the default JSON codec for use as a response body.
func JSONBody(v any) ([]byte, error) {
	return request.JSON().Encode(v)
}

// RespondJSON declares a JSON response. It panics if v cannot be encoded.
func RespondJSON(status int, v any) *ServerResponse {
	body, err := JSONBody(v)
	if err != nil {
		panic("mock: encode response body: " + err.Error())
	}
	r := Respond(status, body)
	r.Header = map[string]string{"Content-Type": "application/json"}
	return r
}

// toTransport copies the declaration into a fresh transport response.
func (r *ServerResponse) toTransport() *transport.Response {
	out := &transport.Response{
		StatusCode: r.StatusCode,
		Proto:      r.Proto,
		Header:     make(http.Header, len(r.Header)),
	}
	if out.StatusCode == 0 {
		out.StatusCode = http.StatusOK
	}
	if out.Proto == "" {
		out.Proto = DefaultProto
	}
	for k, v := range r.Header {
		out.Header.Set(k, v)
	}
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return out
}

// Exchange pairs a reference request with exactly one of a response or a
// transport failure.
type Exchange struct {
	// Request is the reference request. Only its path and method matter.
	Request *request.Wire
	// Response is returned when the exchange matches.
	Response *ServerResponse
	// Failure is reported when HasFailure is set.
	Failure    errors.TransportKind
	HasFailure bool
}

// ExchangeOption configures an Exchange.
type ExchangeOption func(*Exchange)

// WithResponse makes the exchange succeed with r.
func WithResponse(r *ServerResponse) ExchangeOption {
	return func(e *Exchange) {
		e.Response = r
	}
}

// WithStatus makes the exchange succeed with the given status and body.
func WithStatus(status int, body []byte) ExchangeOption {
	return WithResponse(Respond(status, body))
}

// WithFailure makes the exchange fail with kind.
func WithFailure(kind errors.TransportKind) ExchangeOption {
	return func(e *Exchange) {
		e.Failure = kind
		e.HasFailure = true
	}
}

// NewExchange declares an exchange for the reference request w.
func NewExchange(w *request.Wire, opts ...ExchangeOption) Exchange {
	e := Exchange{Request: w}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// ExchangeFor declares an exchange whose reference request is built from d.
func ExchangeFor(d request.Descriptor, opts ...ExchangeOption) (Exchange, error) {
	w, err := request.Build(d)
	if err != nil {
		return Exchange{}, err
	}
	return NewExchange(w, opts...), nil
}

// On declares an exchange for method and path without a descriptor. A
// missing leading slash is added, since built requests always carry one.
func On(method request.Method, path string, opts ...ExchangeOption) Exchange {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	w := &request.Wire{
		Method: method,
		URL:    &url.URL{Scheme: request.HTTPS.String(), Host: request.DefaultHost, Path: path},
		Header: make(http.Header),
	}
	return NewExchange(w, opts...)
}

// Key returns the matching key of the exchange.
func (e Exchange) Key() (string, request.Method) {
	if e.Request == nil {
		return "", ""
	}
	return e.Request.Path(), e.Request.Method
}

// Validate checks that the exchange can produce exactly one outcome.
func (e Exchange) Validate() error {
	switch {
	case e.Request == nil:
		return ErrNoRequest
	case e.Response == nil && !e.HasFailure:
		return ErrEmptyExchange
	case e.Response != nil && e.HasFailure:
		return ErrAmbiguousExchange
	}
	return nil
}

// matches reports whether w has the exchange's path and method.
func (e Exchange) matches(w *request.Wire) bool {
	path, method := e.Key()
	return path == w.Path() && method == w.Method
}

// outcome produces the result of a match.
func (e Exchange) outcome() Outcome {
	if e.HasFailure {
		return Outcome{Failure: errors.NewTransportFailure(e.Failure, nil)}
	}
	return Outcome{Response: e.Response.toTransport()}
}

// Outcome is the result of intercepting a request: a response or a failure.
type Outcome struct {
	Response *transport.Response
	Failure  *errors.TransportFailure
}

// Result returns the outcome in Transport.Send form.
func (o Outcome) Result() (*transport.Response, error) {
	if o.Failure != nil {
		return nil, o.Failure
	}
	return o.Response, nil
}
