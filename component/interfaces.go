package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed part of a wirekit setup.
type Component interface {
	// Name returns the unique name of the component.
	Name() string
	// Start prepares the component for use.
	Start(ctx context.Context) error
	// Stop releases the component's resources.
	Stop(ctx context.Context) error
	// Health returns the current health of the component.
	Health(ctx context.Context) Health
}

// Description summarizes a component for startup logs.
type Description struct {
	// Name is the display name. Empty means Component.Name().
	Name string
	// Type categorizes the component, e.g. "transport" or "mock".
	Type string
	// Details is a one-line summary of the configuration.
	Details string
}

// Describable is implemented by components that report a Description.
type Describable interface {
	Describe() Description
}
