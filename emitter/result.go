package emitter

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Outcome classifies what happened to one listener during one emit.
type Outcome int8

const (
	// OutcomeSuccess: the listener ran and returned nil (or stopped
	// propagation deliberately).
	OutcomeSuccess Outcome = iota
	// OutcomeFailure: the listener returned an error or panicked.
	OutcomeFailure
	// OutcomeCancelled: the cancellation signal pre-empted the invocation,
	// or the listener observed it while suspended.
	OutcomeCancelled
	// OutcomeSkipped: the listener was not started — its one-shot claim was
	// won by a concurrent emit, or an earlier listener stopped propagation.
	OutcomeSkipped
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ListenerResult is the recorded outcome of one listener in one emit.
type ListenerResult struct {
	Index      int // position in the snapshot / invocation order
	ListenerID uint64
	Priority   int
	Outcome    Outcome
	Err        error
	Duration   time.Duration
}

// DispatchResult is the immutable per-emit record: one entry per snapshot
// listener, in snapshot order. Listener failures live here as data; the emit
// call itself never fails because a listener failed.
type DispatchResult struct {
	emitID  string
	event   string
	started time.Time
	entries []ListenerResult
}

// EmitID returns the unique id of the emit call that produced this result.
func (r *DispatchResult) EmitID() string {
	return r.emitID
}

// Event returns the emitted event name.
func (r *DispatchResult) Event() string {
	return r.event
}

// StartedAt returns when the dispatch began.
func (r *DispatchResult) StartedAt() time.Time {
	return r.started
}

// Len returns the number of listeners in the snapshot.
func (r *DispatchResult) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the per-listener outcomes in invocation order.
func (r *DispatchResult) Entries() []ListenerResult {
	out := make([]ListenerResult, len(r.entries))
	copy(out, r.entries)
	return out
}

// Entry returns the outcome at a snapshot position.
func (r *DispatchResult) Entry(i int) ListenerResult {
	return r.entries[i]
}

// Failed returns the entries that ended in failure.
func (r *DispatchResult) Failed() []ListenerResult {
	var out []ListenerResult
	for _, e := range r.entries {
		if e.Outcome == OutcomeFailure {
			out = append(out, e)
		}
	}
	return out
}

// Succeeded returns the number of successful entries.
func (r *DispatchResult) Succeeded() int {
	n := 0
	for _, e := range r.entries {
		if e.Outcome == OutcomeSuccess {
			n++
		}
	}
	return n
}

// Err aggregates all listener failures into a single error, or nil when no
// listener failed.
func (r *DispatchResult) Err() error {
	var err error
	for _, e := range r.entries {
		if e.Outcome == OutcomeFailure {
			err = multierr.Append(err, e.Err)
		}
	}
	return err
}

// collector accumulates per-listener outcomes for one emit. Records are
// append-only: the first write to a slot wins, later writes are ignored.
type collector struct {
	mu   sync.Mutex
	res  *DispatchResult
	done []bool
}

// newCollector preallocates one slot per snapshot entry so that every
// listener is accounted for exactly once.
func newCollector(event string, snap []*listenerEntry) *collector {
	entries := make([]ListenerResult, len(snap))
	for i, e := range snap {
		entries[i] = ListenerResult{
			Index:      i,
			ListenerID: e.id,
			Priority:   e.priority,
			Outcome:    OutcomeSkipped,
		}
	}
	return &collector{
		res: &DispatchResult{
			emitID:  uuid.NewString(),
			event:   event,
			started: time.Now(),
			entries: entries,
		},
		done: make([]bool, len(snap)),
	}
}

// record stores the outcome for one slot. Safe for concurrent use by
// fan-out invocations.
func (c *collector) record(i int, outcome Outcome, err error, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done[i] {
		return
	}
	c.done[i] = true
	c.res.entries[i].Outcome = outcome
	c.res.entries[i].Err = err
	c.res.entries[i].Duration = d
}

// result finalizes the collected outcomes. Call only after all invocations
// of the emit have settled.
func (c *collector) result() *DispatchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.res
}
