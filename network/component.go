package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/wirekit/component"
	"github.com/kbukum/wirekit/mock"
	"github.com/kbukum/wirekit/observability"
)

// Component manages a Manager built from a Config.
type Component struct {
	cfg Config
	reg *mock.Registry

	mu       sync.RWMutex
	manager  *Manager
	exporter *observability.Exporter
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a component for cfg. reg is only used by the mock
// transport.
func NewComponent(cfg Config, reg *mock.Registry) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, reg: reg}
}

// Name implements component.Component.
func (c *Component) Name() string { return c.cfg.Name }

// Start installs telemetry export when configured, then builds the
// manager.
func (c *Component) Start(ctx context.Context) error {
	var exp *observability.Exporter
	if c.cfg.Telemetry.Export.Enabled() {
		var err error
		exp, err = observability.Setup(ctx, c.cfg.Telemetry.Export)
		if err != nil {
			return fmt.Errorf("network: %w", err)
		}
	}

	m, err := NewFromConfig(c.cfg, c.reg)
	if err != nil {
		if exp != nil {
			_ = exp.Shutdown(ctx)
		}
		return err
	}
	c.mu.Lock()
	c.manager = m
	c.exporter = exp
	c.mu.Unlock()
	return nil
}

// Stop closes idle connections held by the transport and flushes
// telemetry export.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	m, exp := c.manager, c.exporter
	c.manager, c.exporter = nil, nil
	c.mu.Unlock()

	if m != nil {
		if closer, ok := m.Transport().(interface{ CloseIdleConnections() }); ok {
			closer.CloseIdleConnections()
		}
	}
	if exp != nil {
		if err := exp.Shutdown(ctx); err != nil {
			return fmt.Errorf("network: telemetry shutdown: %w", err)
		}
	}
	return nil
}

// Health implements component.Component.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.Manager() == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Request Manager",
		Type:    "transport",
		Details: fmt.Sprintf("transport=%s timeout=%s", c.cfg.Transport, c.cfg.Timeout),
	}
}

// Manager returns the running manager, or nil before Start.
func (c *Component) Manager() *Manager {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.manager
}
