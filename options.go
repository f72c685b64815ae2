package stafilter

import (
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nlstn/go-stafilter/internal/observability"
	"github.com/nlstn/go-stafilter/internal/query"
)

// Option configures Compile and Select.
type Option func(*config)

type config struct {
	schema  Schema
	logger  *slog.Logger
	cache   *Cache
	workers int
	tp      trace.TracerProvider
	mp      metric.MeterProvider
	service string
}

// WithSchema sets the schema filters are checked against. The default is
// ObservationSchema. A nil schema accepts any property as a TimeObject.
func WithSchema(schema Schema) Option {
	return func(c *config) {
		c.schema = schema
	}
}

// WithLogger sets the logger for rejected filters and failed evaluations.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracerProvider enables tracing of compilation and selection.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tp = tp
	}
}

// WithMeterProvider enables compile, evaluation and error metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.mp = mp
	}
}

// WithServiceName sets the name recorded on compile and select spans.
// The default is "stafilter".
func WithServiceName(name string) Option {
	return func(c *config) {
		c.service = name
	}
}

// WithCache sets the cache compiled filters are kept in. A nil cache disables
// caching. The default is a cache shared by the whole process.
func WithCache(cache *Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithWorkers bounds the number of candidates Select evaluates concurrently.
// Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		schema: ObservationSchema(),
		logger: slog.Default(),
		cache:  defaultCache,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}
	return cfg
}

// telemetry returns the tracer and instruments for the configured providers,
// created once per provider pair and service name.
func (c *config) telemetry() *observability.Config {
	return observability.Shared(c.tp, c.mp, c.service)
}

var defaultCache = NewCache(query.DefaultCacheSize)

// Cache keeps compiled filters keyed by filter text and schema.
// It is safe for concurrent use.
type Cache struct {
	c *query.Cache
}

// NewCache creates a cache holding at most size compiled filters.
// A size <= 0 selects a default capacity.
func NewCache(size int) *Cache {
	return &Cache{c: query.NewCache(size)}
}

// Len returns the number of cached filters.
func (c *Cache) Len() int { return c.c.Len() }

// Stats returns the hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses uint64) { return c.c.Stats() }

func (c *Cache) compile(filter string, schema Schema) (*query.Program, bool, error) {
	if c == nil {
		p, err := query.Compile(filter, schema)
		return p, false, err
	}
	return c.c.Compile(filter, schema)
}
