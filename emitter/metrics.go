package emitter

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EmitterMetricsConfig holds configuration for emitter metrics.
type EmitterMetricsConfig struct {
	Enabled             bool
	RecordListenerGauge bool
}

// EmitterMetrics implements component.MetricsProvider for emitter
// instrumentation.
type EmitterMetrics struct {
	config     EmitterMetricsConfig
	meter      metric.Meter
	registered bool
	mu         sync.RWMutex

	emitsTotal       metric.Int64Counter
	listenerOutcomes metric.Int64Counter
	emitDuration     metric.Float64Histogram
	listenersGauge   metric.Int64ObservableGauge

	listenerCountCallback func() int64
}

// NewEmitterMetrics creates a new emitter metrics provider.
func NewEmitterMetrics(cfg EmitterMetricsConfig) *EmitterMetrics {
	return &EmitterMetrics{
		config: cfg,
	}
}

// MetricsName returns the metrics group name.
func (m *EmitterMetrics) MetricsName() string {
	return "emitter"
}

// IsMetricsEnabled returns whether metrics collection is enabled.
func (m *EmitterMetrics) IsMetricsEnabled() bool {
	return m.config.Enabled
}

// RegisterMetrics registers all emitter metrics with the provided Meter.
func (m *EmitterMetrics) RegisterMetrics(meter metric.Meter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	m.meter = meter
	var err error

	m.emitsTotal, err = meter.Int64Counter(
		"emitter_emits_total",
		metric.WithDescription("Total number of emit calls"),
		metric.WithUnit("{emit}"),
	)
	if err != nil {
		return err
	}

	m.listenerOutcomes, err = meter.Int64Counter(
		"emitter_listener_outcomes_total",
		metric.WithDescription("Listener invocation outcomes per emit"),
		metric.WithUnit("{listener}"),
	)
	if err != nil {
		return err
	}

	m.emitDuration, err = meter.Float64Histogram(
		"emitter_emit_duration_seconds",
		metric.WithDescription("Emit dispatch duration distribution"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	if m.config.RecordListenerGauge {
		m.listenersGauge, err = meter.Int64ObservableGauge(
			"emitter_registered_listeners",
			metric.WithDescription("Current number of registered listeners"),
			metric.WithUnit("{listener}"),
			metric.WithInt64Callback(m.collectListenerCount),
		)
		if err != nil {
			return err
		}
	}

	m.registered = true
	return nil
}

func (m *EmitterMetrics) collectListenerCount(_ context.Context, observer metric.Int64Observer) error {
	m.mu.RLock()
	callback := m.listenerCountCallback
	m.mu.RUnlock()

	if callback != nil {
		observer.Observe(callback())
	}
	return nil
}

// SetListenerCountCallback sets the registered-listeners gauge source.
func (m *EmitterMetrics) SetListenerCountCallback(callback func() int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listenerCountCallback = callback
}

// RecordEmit records one emit call and its duration.
func (m *EmitterMetrics) RecordEmit(ctx context.Context, event string, duration time.Duration) {
	if !m.IsRegistered() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("event", event),
	}

	m.emitsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.emitDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOutcome records one listener outcome.
func (m *EmitterMetrics) RecordOutcome(ctx context.Context, event, outcome string) {
	if !m.IsRegistered() {
		return
	}

	m.listenerOutcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", event),
		attribute.String("outcome", outcome),
	))
}

// IsRegistered returns whether metrics have been registered.
func (m *EmitterMetrics) IsRegistered() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registered
}
