package emitter

import "errors"

// ErrStopPropagation stops event propagation without being treated as a
// failure. Listeners after the returning one are recorded as Skipped.
var ErrStopPropagation = errors.New("stop propagation")

// ErrInvalidListener is returned by Subscribe when the listener is nil.
var ErrInvalidListener = errors.New("invalid listener")

// ErrInvalidEventName is returned by Subscribe when the event name is empty.
var ErrInvalidEventName = errors.New("invalid event name")

// ErrEmitterClosed is returned by Subscribe after Close.
var ErrEmitterClosed = errors.New("emitter closed")

// ErrListenerPanic wraps a recovered panic from a listener body.
var ErrListenerPanic = errors.New("listener panic")
