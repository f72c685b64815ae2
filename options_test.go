package stafilter

import (
	"testing"

	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestTelemetryIsBuiltOncePerProviders(t *testing.T) {
	tp := tracenoop.NewTracerProvider()
	mp := noop.NewMeterProvider()
	opts := []Option{WithTracerProvider(tp), WithMeterProvider(mp)}

	first := newConfig(opts).telemetry()
	if first != newConfig(opts).telemetry() {
		t.Error("compiling twice with the same providers should reuse the instruments")
	}
	if first.Metrics() != newConfig(opts).telemetry().Metrics() {
		t.Error("metrics should be shared")
	}
	if newConfig(nil).telemetry() != newConfig(nil).telemetry() {
		t.Error("the no-op telemetry should be shared too")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig(nil)
	if cfg.cache != defaultCache {
		t.Error("expected the process-wide cache")
	}
	if cfg.workers < 1 {
		t.Errorf("workers = %d, want at least 1", cfg.workers)
	}
	if len(cfg.schema) != 3 {
		t.Errorf("expected the observation schema, got %v", cfg.schema)
	}
}
