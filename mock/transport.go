package mock

import (
	"context"
	"sync"

	"github.com/kbukum/wirekit/request"
	"github.com/kbukum/wirekit/transport"
)

// Transport answers requests from a Registry and records every call.
type Transport struct {
	reg *Registry

	mu    sync.Mutex
	calls []*request.Wire
}

var _ transport.Transport = (*Transport)(nil)

// NewTransport creates a transport backed by reg.
func NewTransport(reg *Registry) *Transport {
	return &Transport{reg: reg}
}

// Name implements transport.Transport.
func (t *Transport) Name() string { return "mock" }

// Registry returns the backing registry.
func (t *Transport) Registry() *Registry { return t.reg }

// Send implements transport.Transport.
func (t *Transport) Send(ctx context.Context, w *request.Wire) (*transport.Response, error) {
	t.mu.Lock()
	t.calls = append(t.calls, w.Clone())
	t.mu.Unlock()

	ctx, cancel := transport.WithRequestTimeout(ctx, w)
	defer cancel()
	return t.reg.Intercept(ctx, w).Result()
}

// Calls returns the requests sent so far, oldest first.
func (t *Transport) Calls() []*request.Wire {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*request.Wire, len(t.calls))
	copy(out, t.calls)
	return out
}

// ResetCalls forgets recorded calls.
func (t *Transport) ResetCalls() {
	t.mu.Lock()
	t.calls = nil
	t.mu.Unlock()
}
