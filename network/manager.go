package network

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/observability"
	"github.com/kbukum/wirekit/request"
	"github.com/kbukum/wirekit/transport"
)

// Manager executes descriptors through a transport. It holds no per-call
// state and is safe for concurrent use.
type Manager struct {
	base      transport.Transport
	transport transport.Transport
	log       *logger.Logger
	newID     func() string
	headers   map[string]string
	mw        []transport.Middleware
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithMiddleware wraps the transport. The first middleware is outermost.
func WithMiddleware(mw ...transport.Middleware) Option {
	return func(m *Manager) {
		m.mw = append(m.mw, mw...)
	}
}

// WithRequestIDs replaces the request ID generator.
func WithRequestIDs(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// WithDefaultHeaders adds headers to every request that does not set them.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(m *Manager) {
		m.headers = headers
	}
}

// New creates a Manager sending through t.
func New(t transport.Transport, opts ...Option) *Manager {
	m := &Manager{
		base:  t,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.WithComponent("network")
	}
	m.transport = transport.Chain(m.mw...)(t)
	return m
}

// Transport returns the unwrapped transport.
func (m *Manager) Transport() transport.Transport {
	return m.base
}

// Execute sends d and decodes the response body into T. Use request.Empty
// as T when the body is irrelevant.
func Execute[T any](ctx context.Context, m *Manager, d request.Descriptor) (T, error) {
	var out T

	ctx, span := observability.StartSpan(ctx, observability.SpanExecute)
	defer span.End()

	resp, fields, err := m.roundTrip(ctx, d)
	if err != nil {
		return out, err
	}

	if _, ok := any(&out).(*request.Empty); ok {
		m.log.Debug("request completed", fields)
		return out, nil
	}

	dec := d.Decoder()
	if dec == nil {
		dec = request.JSON()
	}
	if err := dec.Decode(resp.Body, &out); err != nil {
		return out, m.fail(ctx, fields, errors.DecodingFailed(resp.Body, err))
	}
	m.log.Debug("request completed", fields)
	return out, nil
}

// ExecuteRaw sends d and returns the classified response without decoding
// its body.
func ExecuteRaw(ctx context.Context, m *Manager, d request.Descriptor) (*transport.Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanExecute)
	defer span.End()

	resp, fields, err := m.roundTrip(ctx, d)
	if err != nil {
		return nil, err
	}
	m.log.Debug("request completed", fields)
	return resp, nil
}

// roundTrip builds, sends and classifies d. The returned error is always a
// *errors.NetworkError.
func (m *Manager) roundTrip(ctx context.Context, d request.Descriptor) (*transport.Response, map[string]interface{}, error) {
	id := m.newID()
	fields := logger.Fields(
		logger.FieldRequestID, id,
		logger.FieldTransport, m.base.Name(),
	)
	observability.SetSpanAttribute(ctx, observability.AttrRequestID, id)
	observability.SetSpanAttribute(ctx, observability.AttrTransport, m.base.Name())

	w, err := request.Build(d)
	if err != nil {
		nerr, ok := errors.As(err)
		if !ok {
			nerr = errors.EncodingFailed(err)
		}
		return nil, fields, m.fail(ctx, fields, nerr)
	}
	m.applyDefaults(w)

	fields[logger.FieldMethod] = w.Method.String()
	fields[logger.FieldURL] = w.URL.String()
	observability.SetSpanAttribute(ctx, observability.AttrHTTPMethod, w.Method.String())
	observability.SetSpanAttribute(ctx, observability.AttrURL, w.URL.String())

	start := time.Now()
	resp, err := m.transport.Send(ctx, w)
	fields = logger.MergeWithDuration(fields, time.Since(start))

	if err != nil {
		return nil, fields, m.fail(ctx, fields, classifyFailure(err))
	}
	if !resp.IsHTTP() {
		return nil, fields, m.fail(ctx, fields, errors.InvalidResponse("response carries no HTTP status"))
	}

	observability.SetSpanAttribute(ctx, observability.AttrStatusCode, resp.StatusCode)
	fields[logger.FieldStatus] = resp.StatusCode

	if nerr := errors.ClassifyStatus(resp.StatusCode, resp.Body); nerr != nil {
		return nil, fields, m.fail(ctx, fields, nerr)
	}
	return resp, fields, nil
}

// applyDefaults adds default headers the request does not already carry.
// Authorization is left to the descriptor's authorization mode.
func (m *Manager) applyDefaults(w *request.Wire) {
	if len(m.headers) == 0 {
		return
	}
	if w.Header == nil {
		w.Header = make(http.Header)
	}
	for k, v := range m.headers {
		if http.CanonicalHeaderKey(k) == "Authorization" {
			continue
		}
		if w.Header.Get(k) == "" {
			w.Header.Set(k, v)
		}
	}
}

// fail records err on the span and in the log and returns it.
func (m *Manager) fail(ctx context.Context, fields map[string]interface{}, err *errors.NetworkError) *errors.NetworkError {
	observability.SetSpanAttribute(ctx, observability.AttrErrorCode, err.Code.String())
	observability.SetSpanError(ctx, err)

	fields[logger.FieldCode] = err.Code.String()
	m.log.Warn("request failed", logger.MergeWithError(fields, err))
	return err
}

// classifyFailure maps a Send error onto the outcome taxonomy. A bare
// context deadline counts as a timeout.
func classifyFailure(err error) *errors.NetworkError {
	var tf *errors.TransportFailure
	if !stderrors.As(err, &tf) && stderrors.Is(err, context.DeadlineExceeded) {
		return errors.TimedOut(err)
	}
	return errors.FromTransport(err)
}
