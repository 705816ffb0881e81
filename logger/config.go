package logger

// ManagerConfig is the global logger configuration shared by all modules.
type ManagerConfig struct {
	Level         string `mapstructure:"level"`
	AppName       string `mapstructure:"app_name"` // injected into every log line, even when empty
	Encoding      string `mapstructure:"encoding"` // json or console
	EnableConsole bool   `mapstructure:"enable_console"`
	EnableCaller  bool   `mapstructure:"enable_caller"`

	// File output (lumberjack rotation). Disabled unless EnableFile is set.
	EnableFile bool   `mapstructure:"enable_file"`
	BaseLogDir string `mapstructure:"base_log_dir"`
	MaxSize    int    `mapstructure:"max_size"` // MB per file
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`

	// Trace ID extraction.
	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
	TraceIDKey       string `mapstructure:"trace_id_key"`        // context key (default "trace_id")
	TraceIDFieldName string `mapstructure:"trace_id_field_name"` // log field name (default "trace_id")
}

// DefaultManagerConfig returns the default manager configuration.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Level:            "info",
		Encoding:         "json",
		EnableConsole:    true,
		EnableCaller:     false,
		BaseLogDir:       "logs",
		MaxSize:          100,
		MaxBackups:       10,
		MaxAge:           30,
		EnableTraceID:    true,
		TraceIDKey:       "trace_id",
		TraceIDFieldName: "trace_id",
	}
}
