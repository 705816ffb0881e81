package emitter

import "context"

// Listener handles events.
type Listener interface {
	// Handle processes one event. A returned error is recorded in the
	// DispatchResult for that emit and never stops sibling listeners.
	// Returning ErrStopPropagation skips the rest of the snapshot without
	// being treated as a failure.
	Handle(ctx context.Context, event Event) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, event Event) error

// Handle implements Listener.
func (f ListenerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}
