package network

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/wirekit/config"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/mock"
	"github.com/kbukum/wirekit/observability"
	"github.com/kbukum/wirekit/transport"
	"github.com/kbukum/wirekit/validation"
	"github.com/kbukum/wirekit/version"
)

// Transport names accepted by Config.Transport.
const (
	TransportHTTP  = "http"
	TransportResty = "resty"
	TransportMock  = "mock"
)

const defaultTimeout = 30 * time.Second

// TelemetryConfig toggles the tracing and metrics middleware. The
// middleware records into the global OpenTelemetry providers; Component
// installs OTLP-exporting ones when Export has an endpoint.
type TelemetryConfig struct {
	Tracing bool                       `yaml:"tracing" mapstructure:"tracing"`
	Metrics bool                       `yaml:"metrics" mapstructure:"metrics"`
	Export  observability.ExportConfig `yaml:"export" mapstructure:"export"`
}

// Config configures a Manager.
type Config struct {
	// Name identifies the manager in logs and spans.
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	// Transport selects the sender: http, resty or mock.
	Transport string `yaml:"transport" mapstructure:"transport" validate:"required,oneof=http resty mock"`
	// Timeout caps every request at the client level. Descriptor timeouts
	// still apply per call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// Headers are added to requests that do not set them. Authorization is
	// rejected.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// Logging configures the manager's logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
	// Telemetry toggles tracing and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "wirekit"
	}
	if c.Transport == "" {
		c.Transport = TransportHTTP
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	c.Logging.ApplyDefaults()
	c.Telemetry.Export.ApplyDefaults(c.Name)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	v := validation.New().Merge(validation.Validate(c))
	for k := range c.Headers {
		v.Check(http.CanonicalHeaderKey(k) != "Authorization", "headers",
			"authorization comes from the request descriptor, not default headers")
	}
	if err := c.Logging.Validate(); err != nil {
		v.AddError("logging", err.Error())
	}
	return v.Err()
}

// EnvPrefix prefixes the environment variables read by LoadConfig, as in
// WIREKIT_TIMEOUT=5s or WIREKIT_TELEMETRY_EXPORT_ENDPOINT=collector:4318.
const EnvPrefix = "WIREKIT"

// LoadConfig reads the Config called name from <name>.yml (or
// config/<name>.yml), .env files and WIREKIT_* environment variables, then
// applies defaults and validates it.
func LoadConfig(name string, opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithEnvPrefix(EnvPrefix)}, opts...)
	if err := config.Load(name, &cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromConfig builds a Manager from cfg. reg backs the mock transport
// and must be set when cfg.Transport is "mock".
func NewFromConfig(cfg Config, reg *mock.Registry) (*Manager, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	log := logger.New(&cfg.Logging, cfg.Name).WithComponent("network")

	var t transport.Transport
	switch cfg.Transport {
	case TransportHTTP:
		t = transport.NewHTTP(transport.WithTimeout(cfg.Timeout))
	case TransportResty:
		t = transport.NewResty(transport.WithRestyTimeout(cfg.Timeout))
	case TransportMock:
		if reg == nil {
			return nil, fmt.Errorf("network: mock transport requires a registry")
		}
		t = mock.NewTransport(reg)
	}

	mw := []transport.Middleware{transport.WithLogging(log)}
	if cfg.Telemetry.Tracing {
		mw = append(mw, transport.WithTracing(cfg.Name))
	}
	if cfg.Telemetry.Metrics {
		metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, fmt.Errorf("network: %w", err)
		}
		mw = append(mw, transport.WithMetrics(metrics))
	}

	headers := map[string]string{"User-Agent": version.UserAgent()}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	return New(t,
		WithLogger(log),
		WithMiddleware(mw...),
		WithDefaultHeaders(headers),
	), nil
}
