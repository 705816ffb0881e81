package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewTestLogger returns a logger that records entries in memory together
// with the observed sink, so tests can assert on what was logged.
//
//	log, observed := logger.NewTestLogger("emitter")
//	svc.DoWork(ctx)
//	require.Equal(t, 1, observed.FilterMessage("listener failed").Len())
func NewTestLogger(module string) (*CtxZapLogger, *observer.ObservedLogs) {
	core, observed := observer.New(zapcore.DebugLevel)
	cfg := DefaultManagerConfig()
	return &CtxZapLogger{
		base:   zap.New(core).With(zap.String("module", module)),
		module: module,
		config: &cfg,
	}, observed
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger(module string) *CtxZapLogger {
	cfg := DefaultManagerConfig()
	return &CtxZapLogger{
		base:   zap.NewNop(),
		module: module,
		config: &cfg,
	}
}
