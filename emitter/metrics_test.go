package emitter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewEmitterMetrics(t *testing.T) {
	t.Run("creates with config", func(t *testing.T) {
		m := NewEmitterMetrics(EmitterMetricsConfig{
			Enabled:             true,
			RecordListenerGauge: true,
		})

		assert.NotNil(t, m)
		assert.True(t, m.config.Enabled)
		assert.False(t, m.IsRegistered())
	})
}

func TestEmitterMetrics_MetricsProvider(t *testing.T) {
	t.Run("MetricsName returns emitter", func(t *testing.T) {
		m := NewEmitterMetrics(EmitterMetricsConfig{Enabled: true})
		assert.Equal(t, "emitter", m.MetricsName())
	})

	t.Run("IsMetricsEnabled reflects config", func(t *testing.T) {
		m1 := NewEmitterMetrics(EmitterMetricsConfig{Enabled: true})
		assert.True(t, m1.IsMetricsEnabled())

		m2 := NewEmitterMetrics(EmitterMetricsConfig{Enabled: false})
		assert.False(t, m2.IsMetricsEnabled())
	})
}

func TestEmitterMetrics_RegisterMetrics(t *testing.T) {
	t.Run("registers all metrics", func(t *testing.T) {
		mp := noop.NewMeterProvider()
		meter := mp.Meter("test")

		m := NewEmitterMetrics(EmitterMetricsConfig{
			Enabled:             true,
			RecordListenerGauge: true,
		})
		err := m.RegisterMetrics(meter)

		require.NoError(t, err)
		assert.True(t, m.IsRegistered())
		assert.NotNil(t, m.emitsTotal)
		assert.NotNil(t, m.listenerOutcomes)
		assert.NotNil(t, m.emitDuration)
	})

	t.Run("idempotent registration", func(t *testing.T) {
		mp := noop.NewMeterProvider()
		meter := mp.Meter("test")

		m := NewEmitterMetrics(EmitterMetricsConfig{Enabled: true})

		require.NoError(t, m.RegisterMetrics(meter))
		require.NoError(t, m.RegisterMetrics(meter))
	})
}

func TestEmitterMetrics_RecordMethods(t *testing.T) {
	mp := noop.NewMeterProvider()
	meter := mp.Meter("test")

	m := NewEmitterMetrics(EmitterMetricsConfig{Enabled: true})
	require.NoError(t, m.RegisterMetrics(meter))

	ctx := context.Background()

	t.Run("RecordEmit does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEmit(ctx, "user.created", 5*time.Millisecond)
		})
	})

	t.Run("RecordOutcome does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordOutcome(ctx, "user.created", "success")
		})
	})

	t.Run("methods no-op when not registered", func(t *testing.T) {
		unregistered := NewEmitterMetrics(EmitterMetricsConfig{Enabled: true})
		assert.NotPanics(t, func() {
			unregistered.RecordEmit(ctx, "event", time.Second)
			unregistered.RecordOutcome(ctx, "event", "failure")
		})
	})
}

func TestEmitterMetrics_ListenerCountCallback(t *testing.T) {
	m := NewEmitterMetrics(EmitterMetricsConfig{Enabled: true, RecordListenerGauge: true})

	callback := func() int64 { return 42 }
	m.SetListenerCountCallback(callback)
	assert.NotNil(t, m.listenerCountCallback)
}

func TestEmitter_WithMetrics_WiresGaugeCallback(t *testing.T) {
	m := NewEmitterMetrics(EmitterMetricsConfig{Enabled: true, RecordListenerGauge: true})
	em := New(WithMetrics(m))
	defer em.Close()

	_, _ = em.Subscribe("a.event", ListenerFunc(func(ctx context.Context, e Event) error { return nil }))
	_, _ = em.Subscribe("b.event", ListenerFunc(func(ctx context.Context, e Event) error { return nil }))

	require.NotNil(t, m.listenerCountCallback)
	assert.Equal(t, int64(2), m.listenerCountCallback())
}

func TestEmitter_WithMetrics_EmitRecorded(t *testing.T) {
	mp := noop.NewMeterProvider()
	m := NewEmitterMetrics(EmitterMetricsConfig{Enabled: true})
	require.NoError(t, m.RegisterMetrics(mp.Meter("test")))

	em := New(WithMetrics(m))
	defer em.Close()

	_, _ = em.Subscribe("test.event", ListenerFunc(func(ctx context.Context, e Event) error { return nil }))

	assert.NotPanics(t, func() {
		em.Emit(context.Background(), NewTestEvent("test.event", ""))
	})
}
