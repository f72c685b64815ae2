package observability

import (
	"reflect"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultServiceName names spans when no service name is configured.
const DefaultServiceName = "stafilter"

// Config holds the tracer and instruments used while compiling and
// evaluating filters.
type Config struct {
	// TracerProvider is the OpenTelemetry tracer provider.
	// If nil, tracing is disabled.
	TracerProvider trace.TracerProvider

	// MeterProvider is the OpenTelemetry meter provider.
	// If nil, metrics collection is disabled.
	MeterProvider metric.MeterProvider

	// ServiceName is recorded on every span as stafilter.service.
	ServiceName string

	tracer  *Tracer
	metrics *Metrics
}

// Option is a functional option for configuring observability.
type Option func(*Config)

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Config) {
		c.MeterProvider = mp
	}
}

// WithServiceName sets the name recorded on spans.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// NewConfig creates a new observability configuration with the given options.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		ServiceName: DefaultServiceName,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Initialize sets up the tracer and metrics based on configuration.
// This should be called after all options are set.
func (c *Config) Initialize() {
	if c.TracerProvider != nil {
		c.tracer = NewTracer(c.TracerProvider, c.ServiceName)
	} else {
		c.tracer = NewNoopTracer()
	}

	if c.MeterProvider != nil {
		c.metrics = NewMetrics(c.MeterProvider)
	} else {
		c.metrics = NewNoopMetrics()
	}
}

type providerKey struct {
	tp      trace.TracerProvider
	mp      metric.MeterProvider
	service string
}

var (
	sharedMu sync.Mutex
	shared   = map[providerKey]*Config{}
)

// Shared returns an initialized Config for the providers and service name.
// The tracer and instruments are created on the first call for a combination
// and reused afterwards. An empty service selects DefaultServiceName.
// Providers whose dynamic type cannot be a map key get a fresh Config.
func Shared(tp trace.TracerProvider, mp metric.MeterProvider, service string) *Config {
	if service == "" {
		service = DefaultServiceName
	}
	if !isComparable(tp) || !isComparable(mp) {
		return initialized(tp, mp, service)
	}

	key := providerKey{tp: tp, mp: mp, service: service}
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if cfg, ok := shared[key]; ok {
		return cfg
	}
	cfg := initialized(tp, mp, service)
	shared[key] = cfg
	return cfg
}

func initialized(tp trace.TracerProvider, mp metric.MeterProvider, service string) *Config {
	cfg := NewConfig(WithTracerProvider(tp), WithMeterProvider(mp), WithServiceName(service))
	cfg.Initialize()
	return cfg
}

func isComparable(v any) bool {
	return v == nil || reflect.TypeOf(v).Comparable()
}

// Tracer returns the configured tracer, or a no-op tracer if not configured.
func (c *Config) Tracer() *Tracer {
	if c == nil || c.tracer == nil {
		return NewNoopTracer()
	}
	return c.tracer
}

// Metrics returns the configured metrics, or a no-op metrics if not configured.
func (c *Config) Metrics() *Metrics {
	if c == nil || c.metrics == nil {
		return NewNoopMetrics()
	}
	return c.metrics
}

// IsEnabled returns true if any observability features are configured.
func (c *Config) IsEnabled() bool {
	return c != nil && (c.TracerProvider != nil || c.MeterProvider != nil)
}
