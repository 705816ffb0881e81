package component

import (
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider is optionally implemented by components that expose
// metrics. A metrics registry calls RegisterMetrics after component Init.
type MetricsProvider interface {
	// MetricsName returns the metrics group name used for Meter naming.
	// Should be a short, lowercase identifier like "emitter".
	MetricsName() string

	// RegisterMetrics registers all metrics for this component with the
	// provided Meter.
	RegisterMetrics(meter metric.Meter) error

	// IsMetricsEnabled reports whether metrics collection is enabled for
	// this component.
	IsMetricsEnabled() bool
}
