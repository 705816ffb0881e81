package emitter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/asyncware/go-emitter/logger"
)

// Meta events, emitted by the registry itself when WithListenerEvents is
// enabled. Payload is *ListenerChange.
const (
	// EventListenerAdded fires immediately before a new listener is attached.
	EventListenerAdded = "emitter.listener_added"
	// EventListenerRemoved fires immediately after a listener is removed.
	EventListenerRemoved = "emitter.listener_removed"
)

// ListenerChange is the payload of the registry meta events.
type ListenerChange struct {
	Event      string
	ListenerID uint64
}

// Emitter registers listeners against named events and dispatches emitted
// events to them.
type Emitter interface {
	// Subscribe registers a listener for an event and returns its handle.
	// Fails with ErrInvalidListener for a nil listener and
	// ErrInvalidEventName for an empty name. Duplicate listeners are
	// permitted and tracked independently.
	Subscribe(eventName string, listener Listener, opts ...SubscribeOption) (*Handle, error)

	// Unsubscribe revokes a registration. Idempotent; stale or nil handles
	// are no-ops.
	Unsubscribe(h *Handle)

	// Emit invokes every listener in the current snapshot for the event and
	// returns once all invocations have settled. Listener failures are
	// recorded in the result, never returned as an error; emitting an event
	// with no listeners yields an empty result. Cancelling ctx stops further
	// listeners from starting; pre-empted entries are recorded Cancelled.
	Emit(ctx context.Context, event Event) *DispatchResult

	// EmitPayload is shorthand for Emit with a PayloadEvent.
	EmitPayload(ctx context.Context, eventName string, payload interface{}) *DispatchResult

	// Use registers a global interceptor around every dispatch.
	Use(interceptor Interceptor)

	// ListenerCount returns the number of live registrations for an event.
	ListenerCount(eventName string) int

	// EventNames returns the event names that currently have listeners.
	EventNames() []string

	// Clear removes all listeners for one event.
	Clear(eventName string)

	// ClearAll removes every listener.
	ClearAll()

	// Close tears the emitter down: releases the pool and drops all
	// registrations. Emits after Close return empty results.
	Close()
}

type emitter struct {
	reg    *registry
	nextID uint64
	closed atomic.Bool

	intMu        sync.RWMutex
	interceptors []Interceptor

	pool     *ants.Pool
	poolSize int
	mode     string

	serialize bool
	emitLocks sync.Map // event name -> *sync.Mutex

	maxListeners   int
	listenerEvents bool

	logger  *logger.CtxZapLogger
	metrics *EmitterMetrics
}

// New creates an emitter. The dispatch mode and pool size are fixed at
// construction; per-listener behavior is set at Subscribe time.
func New(opts ...Option) Emitter {
	e := &emitter{
		reg:      newRegistry(),
		poolSize: 100,
		mode:     ModeSequential,
		logger:   logger.GetLogger("emitter"),
	}

	for _, opt := range opts {
		opt(e)
	}

	var err error
	e.pool, err = ants.NewPool(e.poolSize)
	if err != nil {
		e.logger.Error("failed to create goroutine pool, using default size", zap.Error(err))
		e.pool, _ = ants.NewPool(100)
	}

	if e.metrics != nil {
		e.metrics.SetListenerCountCallback(func() int64 {
			return int64(e.reg.totalCount())
		})
	}

	return e
}

// Subscribe registers a listener for an event.
func (e *emitter) Subscribe(eventName string, listener Listener, opts ...SubscribeOption) (*Handle, error) {
	if eventName == "" {
		return nil, ErrInvalidEventName
	}
	if listener == nil {
		return nil, ErrInvalidListener
	}
	if e.closed.Load() {
		return nil, ErrEmitterClosed
	}

	entry := &listenerEntry{
		id:       atomic.AddUint64(&e.nextID, 1),
		listener: listener,
	}
	for _, opt := range opts {
		opt(entry)
	}

	// fired before the listener becomes visible, so a listener on the meta
	// event observes the pre-registration state
	if e.listenerEvents && !isMetaEvent(eventName) {
		e.Emit(context.Background(), NewPayloadEvent(EventListenerAdded, &ListenerChange{
			Event:      eventName,
			ListenerID: entry.id,
		}))
	}

	count := e.reg.add(eventName, entry)
	if e.maxListeners > 0 && count > e.maxListeners {
		e.logger.Warn("listener count exceeds max_listeners",
			zap.String("event", eventName),
			zap.Int("count", count),
			zap.Int("max_listeners", e.maxListeners))
	}

	return &Handle{event: eventName, id: entry.id, em: e}, nil
}

// Unsubscribe revokes a registration.
func (e *emitter) Unsubscribe(h *Handle) {
	h.Unsubscribe()
}

// unsubscribe removes the entry and fires the removal meta event when the
// entry was actually present.
func (e *emitter) unsubscribe(eventName string, id uint64) {
	if !e.reg.remove(eventName, id) {
		return
	}
	if e.listenerEvents && !isMetaEvent(eventName) && !e.closed.Load() {
		e.Emit(context.Background(), NewPayloadEvent(EventListenerRemoved, &ListenerChange{
			Event:      eventName,
			ListenerID: id,
		}))
	}
}

// Use registers a global interceptor.
func (e *emitter) Use(interceptor Interceptor) {
	e.intMu.Lock()
	e.interceptors = append(e.interceptors, interceptor)
	e.intMu.Unlock()
}

// Emit dispatches an event to the snapshot of its listeners.
func (e *emitter) Emit(ctx context.Context, event Event) *DispatchResult {
	if event == nil {
		return newCollector("", nil).result()
	}
	eventName := event.Name()
	if e.closed.Load() {
		return newCollector(eventName, nil).result()
	}

	if e.serialize {
		mu := e.emitLock(eventName)
		mu.Lock()
		defer mu.Unlock()
	}

	snap := e.reg.snapshot(eventName)
	col := newCollector(eventName, snap)
	if len(snap) == 0 {
		return col.result()
	}

	start := time.Now()
	handler := e.buildChain(func(ctx context.Context, ev Event) *DispatchResult {
		e.run(ctx, ev, snap, col)
		return col.result()
	})
	res := handler(ctx, event)

	if e.metrics != nil && res != nil {
		e.metrics.RecordEmit(ctx, eventName, time.Since(start))
		for _, entry := range res.Entries() {
			e.metrics.RecordOutcome(ctx, eventName, entry.Outcome.String())
		}
	}

	return res
}

// EmitPayload dispatches a PayloadEvent.
func (e *emitter) EmitPayload(ctx context.Context, eventName string, payload interface{}) *DispatchResult {
	return e.Emit(ctx, NewPayloadEvent(eventName, payload))
}

// run invokes the snapshot according to the dispatch mode. All bookkeeping
// goes through the collector; by the time run returns, every slot is
// settled.
func (e *emitter) run(ctx context.Context, event Event, snap []*listenerEntry, col *collector) {
	var wg sync.WaitGroup
	stopped := false

	for i, entry := range snap {
		if stopped {
			col.record(i, OutcomeSkipped, nil, 0)
			continue
		}
		if err := ctx.Err(); err != nil {
			// cancellation observed: no further listener starts
			col.record(i, OutcomeCancelled, err, 0)
			continue
		}

		if entry.once {
			if !entry.claim() {
				// a concurrent emit won the claim; at-most-once holds
				col.record(i, OutcomeSkipped, nil, 0)
				continue
			}
			e.removeConsumed(event.Name(), entry.id)
		}

		if entry.async && e.mode == ModeFanOut {
			wg.Add(1)
			idx, en := i, entry
			if err := e.pool.Submit(func() {
				defer wg.Done()
				e.invokeOne(ctx, event, idx, en, col)
			}); err != nil {
				wg.Done()
				e.logger.WarnCtx(ctx, "pool submit failed, running listener inline",
					zap.String("event", event.Name()), zap.Error(err))
				e.invokeOne(ctx, event, idx, en, col)
			}
			continue
		}

		if stop := e.invokeOne(ctx, event, i, entry, col); stop {
			stopped = true
		}
	}

	wg.Wait()
}

// invokeOne runs a single listener and records its outcome. Reports whether
// propagation should stop.
func (e *emitter) invokeOne(ctx context.Context, event Event, idx int, entry *listenerEntry, col *collector) (stop bool) {
	start := time.Now()
	err := e.safeHandle(ctx, event, entry)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		col.record(idx, OutcomeSuccess, nil, elapsed)
	case errors.Is(err, ErrStopPropagation):
		col.record(idx, OutcomeSuccess, nil, elapsed)
		stop = true
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		col.record(idx, OutcomeCancelled, err, elapsed)
	default:
		col.record(idx, OutcomeFailure, err, elapsed)
		e.logger.ErrorCtx(ctx, "listener failed",
			zap.String("event", event.Name()),
			zap.Uint64("listener_id", entry.id),
			zap.Error(err))
	}
	return stop
}

// safeHandle converts a listener panic into a recorded failure so one
// misbehaving listener cannot break delivery to the others.
func (e *emitter) safeHandle(ctx context.Context, event Event, entry *listenerEntry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, r)
		}
	}()
	return entry.listener.Handle(ctx, event)
}

// removeConsumed drops a claimed one-shot entry and fires the removal meta
// event.
func (e *emitter) removeConsumed(eventName string, id uint64) {
	if !e.reg.remove(eventName, id) {
		return
	}
	if e.listenerEvents && !isMetaEvent(eventName) {
		e.Emit(context.Background(), NewPayloadEvent(EventListenerRemoved, &ListenerChange{
			Event:      eventName,
			ListenerID: id,
		}))
	}
}

// buildChain wraps the listener dispatch with the registered interceptors,
// outermost first.
func (e *emitter) buildChain(final Next) Next {
	e.intMu.RLock()
	interceptors := make([]Interceptor, len(e.interceptors))
	copy(interceptors, e.interceptors)
	e.intMu.RUnlock()

	handler := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		interceptor, next := interceptors[i], handler
		handler = func(ctx context.Context, ev Event) *DispatchResult {
			return interceptor(ctx, ev, next)
		}
	}
	return handler
}

func (e *emitter) emitLock(eventName string) *sync.Mutex {
	v, _ := e.emitLocks.LoadOrStore(eventName, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// ListenerCount returns the number of live registrations for an event.
func (e *emitter) ListenerCount(eventName string) int {
	return e.reg.count(eventName)
}

// EventNames returns the event names that currently have listeners.
func (e *emitter) EventNames() []string {
	return e.reg.eventNames()
}

// Clear removes all listeners for one event.
func (e *emitter) Clear(eventName string) {
	e.reg.clear(eventName)
}

// ClearAll removes every listener.
func (e *emitter) ClearAll() {
	e.reg.clearAll()
}

// Close tears the emitter down.
func (e *emitter) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.reg.clearAll()
	if e.pool != nil {
		e.pool.Release()
	}
}

func isMetaEvent(name string) bool {
	return name == EventListenerAdded || name == EventListenerRemoved
}
