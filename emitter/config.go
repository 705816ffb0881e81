package emitter

// Config is the emitter component configuration.
type Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	PoolSize        int    `mapstructure:"pool_size"`
	Mode            string `mapstructure:"mode"` // sequential or fanout
	SerializeEvents bool   `mapstructure:"serialize_events"`
	MaxListeners    int    `mapstructure:"max_listeners"` // 0 = unlimited
	ListenerEvents  bool   `mapstructure:"listener_events"`
	MetricsEnabled  bool   `mapstructure:"metrics_enabled"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		PoolSize: 100,
		Mode:     ModeSequential,
	}
}
