package emitter

import (
	"context"
	"fmt"

	"github.com/asyncware/go-emitter/component"
	"github.com/asyncware/go-emitter/logger"
)

// Component wraps the emitter with the lifecycle contract so it can be
// managed next to other components.
type Component struct {
	em      Emitter
	metrics *EmitterMetrics
	logger  *logger.CtxZapLogger
	config  Config
}

// NewComponent creates the emitter component. Configuration is read in Init.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentEmitter
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
	}
}

// Init reads the "emitter" config section and builds the emitter.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("emitter")

	c.config = DefaultConfig()
	if err := loader.Unmarshal("emitter", &c.config); err != nil {
		c.logger.DebugCtx(ctx, "using default emitter config")
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "emitter component disabled")
		return nil
	}

	opts := []Option{
		WithPoolSize(c.config.PoolSize),
		WithMode(c.config.Mode),
		WithMaxListeners(c.config.MaxListeners),
		WithLogger(c.logger),
	}
	if c.config.SerializeEvents {
		opts = append(opts, WithSerializedEvents())
	}
	if c.config.ListenerEvents {
		opts = append(opts, WithListenerEvents())
	}
	if c.config.MetricsEnabled {
		c.metrics = NewEmitterMetrics(EmitterMetricsConfig{
			Enabled:             true,
			RecordListenerGauge: true,
		})
		opts = append(opts, WithMetrics(c.metrics))
	}

	c.em = New(opts...)

	c.logger.InfoCtx(ctx, fmt.Sprintf("emitter component initialized (mode=%s pool_size=%d)",
		c.config.Mode, c.config.PoolSize))
	return nil
}

// Start is a no-op; the emitter has no background work of its own.
func (c *Component) Start(ctx context.Context) error {
	return nil
}

// Stop closes the emitter. Safe to call repeatedly.
func (c *Component) Stop(ctx context.Context) error {
	if c.em != nil {
		c.em.Close()
		c.logger.InfoCtx(ctx, "emitter component stopped")
	}
	return nil
}

// GetEmitter returns the managed emitter, or nil when disabled.
func (c *Component) GetEmitter() Emitter {
	if c.em == nil {
		return nil
	}
	return c.em
}

// GetMetrics returns the metrics provider, or nil when metrics are disabled.
func (c *Component) GetMetrics() *EmitterMetrics {
	return c.metrics
}

// IsEnabled reports whether the component is active.
func (c *Component) IsEnabled() bool {
	return c.config.Enabled && c.em != nil
}
