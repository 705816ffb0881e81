package emitter

import (
	"sync/atomic"

	"github.com/asyncware/go-emitter/logger"
)

// listenerEntry is a registered listener record. The registry owns it;
// snapshots and handles hold references only.
type listenerEntry struct {
	id       uint64
	listener Listener
	priority int
	async    bool        // suspendable body, eligible for fan-out
	once     bool        // fire at most once
	claimed  atomic.Bool // one-shot claim, CAS'd before invocation
}

// claim atomically marks a one-shot entry as consumed. Returns false when a
// concurrent emit already claimed it.
func (e *listenerEntry) claim() bool {
	return e.claimed.CompareAndSwap(false, true)
}

// SubscribeOption configures a single registration.
type SubscribeOption func(*listenerEntry)

// WithPriority sets the listener priority. Higher values dispatch first;
// listeners with equal priority keep their registration order. Default 0.
func WithPriority(priority int) SubscribeOption {
	return func(e *listenerEntry) {
		e.priority = priority
	}
}

// WithOnce marks the listener as fire-at-most-once. The registration is
// consumed atomically before invocation, so even concurrent emits of the
// same event invoke it exactly once.
func WithOnce() SubscribeOption {
	return func(e *listenerEntry) {
		e.once = true
	}
}

// WithAsync marks the listener body as suspendable (it may block on I/O).
// In fan-out mode all async listeners of a snapshot are started before any
// completion is awaited. Listeners without this flag always run inline, to
// completion, in snapshot order, regardless of the dispatch mode.
func WithAsync() SubscribeOption {
	return func(e *listenerEntry) {
		e.async = true
	}
}

// Dispatch mode constants.
const (
	// ModeSequential awaits each listener's completion before starting the
	// next one.
	ModeSequential = "sequential"
	// ModeFanOut starts every async listener in the snapshot before awaiting
	// any of their completions, overlapping independent waits.
	ModeFanOut = "fanout"
)

// Option configures an emitter at construction time.
type Option func(*emitter)

// WithMode selects the dispatch mode. Default ModeSequential.
func WithMode(mode string) Option {
	return func(e *emitter) {
		e.mode = mode
	}
}

// WithPoolSize sets the size of the goroutine pool used for fan-out
// dispatch. Default 100.
func WithPoolSize(size int) Option {
	return func(e *emitter) {
		e.poolSize = size
	}
}

// WithSerializedEvents serializes emits of the same event name: a second
// emit waits until the first one's snapshot has fully settled. Off by
// default. Do not combine with re-entrant emits of the same event from
// inside a listener; that would self-deadlock.
func WithSerializedEvents() Option {
	return func(e *emitter) {
		e.serialize = true
	}
}

// WithMaxListeners sets a soft cap on listeners per event. Crossing it logs
// a warning; registration still succeeds. 0 disables the check.
func WithMaxListeners(n int) Option {
	return func(e *emitter) {
		e.maxListeners = n
	}
}

// WithListenerEvents enables the registry meta events: EventListenerAdded is
// emitted immediately before a listener is attached and EventListenerRemoved
// immediately after one is removed.
func WithListenerEvents() Option {
	return func(e *emitter) {
		e.listenerEvents = true
	}
}

// WithLogger sets the logger. Default is the module logger "emitter".
func WithLogger(l *logger.CtxZapLogger) Option {
	return func(e *emitter) {
		e.logger = l
	}
}

// WithMetrics attaches a metrics provider. Nil disables instrumentation.
func WithMetrics(m *EmitterMetrics) Option {
	return func(e *emitter) {
		e.metrics = m
	}
}
