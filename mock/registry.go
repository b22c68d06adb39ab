package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/request"
	"github.com/kbukum/wirekit/transport"
)

// Registry holds declared exchanges and a simulated latency. It is safe for
// concurrent use; matching never mutates it.
type Registry struct {
	mu        sync.RWMutex
	exchanges []Exchange
	delay     time.Duration
	log       *logger.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for unmatched requests.
func WithLogger(log *logger.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry creates an empty registry with no delay.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("mock")
	}
	return r
}

// Register appends an exchange. Duplicates are allowed; the first declared
// match wins.
func (r *Registry) Register(e Exchange) error {
	if err := e.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.exchanges = append(r.exchanges, e)
	r.mu.Unlock()
	return nil
}

// MustRegister registers e and panics on an invalid exchange or on a
// non-nil err, so it can wrap ExchangeFor directly.
func (r *Registry) MustRegister(e Exchange, err ...error) {
	for _, cause := range err {
		if cause != nil {
			panic(fmt.Sprintf("mock: build exchange: %v", cause))
		}
	}
	if regErr := r.Register(e); regErr != nil {
		panic(regErr.Error())
	}
}

// Clear removes every exchange. The delay is kept.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.exchanges = nil
	r.mu.Unlock()
}

// SetDelay sets the latency applied before each intercepted call.
func (r *Registry) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	r.mu.Lock()
	r.delay = d
	r.mu.Unlock()
}

// Delay returns the configured latency.
func (r *Registry) Delay() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.delay
}

// Exchanges returns the declared exchanges in declaration order.
func (r *Registry) Exchanges() []Exchange {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Exchange, len(r.exchanges))
	copy(out, r.exchanges)
	return out
}

// Len returns the number of declared exchanges.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exchanges)
}

// Match returns the first exchange with the path and method of w.
func (r *Registry) Match(w *request.Wire) (Exchange, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.exchanges {
		if e.matches(w) {
			return e, true
		}
	}
	return Exchange{}, false
}

// Intercept waits for the configured delay, then resolves w against the
// declared exchanges. An unmatched request fails as route-unavailable. If
// ctx ends during the delay the outcome is the matching transport failure.
func (r *Registry) Intercept(ctx context.Context, w *request.Wire) Outcome {
	if err := sleep(ctx, r.Delay()); err != nil {
		return Outcome{Failure: transport.Classify(err)}
	}

	e, ok := r.Match(w)
	if !ok {
		r.log.Warn("no exchange matches request", logger.Fields(
			logger.FieldMethod, w.Method.String(),
			logger.FieldPath, w.Path(),
			logger.FieldExchanges, r.Len(),
		))
		return Outcome{Failure: errors.NewTransportFailure(errors.KindRouteUnavailable, nil)}
	}
	return e.outcome()
}

// snapshot and restore back the test component.
func (r *Registry) snapshot() ([]Exchange, time.Duration) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Exchange, len(r.exchanges))
	copy(out, r.exchanges)
	return out, r.delay
}

func (r *Registry) restore(exchanges []Exchange, delay time.Duration) {
	cp := make([]Exchange, len(exchanges))
	copy(cp, exchanges)
	r.mu.Lock()
	r.exchanges = cp
	r.delay = delay
	r.mu.Unlock()
}

// sleep blocks for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
