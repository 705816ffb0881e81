package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager owns the shared zap cores and hands out module-scoped loggers.
// Loggers are cached per module; Configure rebuilds the cache.
var defaultManager = newManager(DefaultManagerConfig())

type manager struct {
	mu      sync.RWMutex
	config  ManagerConfig
	loggers map[string]*CtxZapLogger
}

func newManager(cfg ManagerConfig) *manager {
	return &manager{
		config:  cfg,
		loggers: make(map[string]*CtxZapLogger),
	}
}

// Configure replaces the global logger configuration. Previously handed-out
// loggers keep their old cores; call GetLogger again after configuring.
func Configure(cfg ManagerConfig) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.config = cfg
	defaultManager.loggers = make(map[string]*CtxZapLogger)
}

// GetLogger returns the cached logger for a module, building it on first use.
func GetLogger(module string) *CtxZapLogger {
	return defaultManager.getLogger(module)
}

func (m *manager) getLogger(module string) *CtxZapLogger {
	m.mu.RLock()
	if l, ok := m.loggers[module]; ok {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[module]; ok {
		return l
	}

	cfg := m.config
	l := &CtxZapLogger{
		base:   m.buildZapLogger(module),
		module: module,
		config: &cfg,
	}
	m.loggers[module] = l
	return l
}

// buildZapLogger assembles the zap cores for one module.
// Caller must hold m.mu.
func (m *manager) buildZapLogger(module string) *zap.Logger {
	level := parseLevel(m.config.Level)
	encoder := m.buildEncoder()

	var cores []zapcore.Core
	if m.config.EnableConsole {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}
	if m.config.EnableFile {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(m.config.BaseLogDir, module+".log"),
			MaxSize:    m.config.MaxSize,
			MaxBackups: m.config.MaxBackups,
			MaxAge:     m.config.MaxAge,
			Compress:   m.config.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder, sink, level))
	}
	if len(cores) == 0 {
		cores = append(cores, zapcore.NewNopCore())
	}

	opts := []zap.Option{}
	if m.config.EnableCaller {
		// skip the CtxZapLogger wrapper frame
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return zap.New(zapcore.NewTee(cores...), opts...).
		With(zap.String("module", module))
}

func (m *manager) buildEncoder() zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if m.config.Encoding == "console" {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewJSONEncoder(encCfg)
}

func parseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
