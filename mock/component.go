package mock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/kbukum/wirekit/component"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/testutil"
)

// Component exposes a Registry as a lifecycle-managed test component.
type Component struct {
	name    string
	reg     *Registry
	started atomic.Bool
}

var (
	_ testutil.TestComponent = (*Component)(nil)
	_ component.Describable  = (*Component)(nil)
)

// Snapshot is the registry state captured by Component.Snapshot.
type Snapshot struct {
	Exchanges []Exchange
	Delay     time.Duration
}

// NewComponent wraps reg. A nil reg gets a fresh registry.
func NewComponent(name string, reg *Registry) *Component {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Component{name: name, reg: reg}
}

// Registry returns the wrapped registry.
func (c *Component) Registry() *Registry { return c.reg }

// Name implements component.Component.
func (c *Component) Name() string { return c.name }

// Start implements component.Component.
func (c *Component) Start(ctx context.Context) error {
	c.started.Store(true)
	logger.WithComponent("mock").Debug("mock registry started", logger.Fields(
		logger.FieldComponent, c.name,
		logger.FieldExchanges, c.reg.Len(),
		logger.FieldDelay, c.reg.Delay().String(),
	))
	return nil
}

// Stop implements component.Component.
func (c *Component) Stop(ctx context.Context) error {
	c.started.Store(false)
	return nil
}

// Health implements component.Component.
func (c *Component) Health(ctx context.Context) component.Health {
	if !c.started.Load() {
		return component.Health{Name: c.name, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{
		Name:    c.name,
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d exchanges", c.reg.Len()),
	}
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Mock Registry",
		Type:    "mock",
		Details: fmt.Sprintf("exchanges=%d delay=%s", c.reg.Len(), c.reg.Delay()),
	}
}

// Reset clears every exchange and the delay.
func (c *Component) Reset(ctx context.Context) error {
	c.reg.restore(nil, 0)
	return nil
}

// Snapshot captures the exchanges and delay as a Snapshot.
func (c *Component) Snapshot(ctx context.Context) (interface{}, error) {
	exchanges, delay := c.reg.snapshot()
	return Snapshot{Exchanges: exchanges, Delay: delay}, nil
}

// Restore returns the registry to a captured Snapshot.
func (c *Component) Restore(ctx context.Context, snapshot interface{}) error {
	s, ok := snapshot.(Snapshot)
	if !ok {
		return fmt.Errorf("mock: invalid snapshot type %T", snapshot)
	}
	c.reg.restore(s.Exchanges, s.Delay)
	return nil
}
