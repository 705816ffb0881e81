package emitter

// Handle is an opaque, revocable registration token bound to one listener
// and one event name. It holds only a reference into the registry; the
// registry remains the sole owner of the listener record.
type Handle struct {
	event string
	id    uint64
	em    *emitter
}

// Event returns the event name this handle was registered against.
func (h *Handle) Event() string {
	if h == nil {
		return ""
	}
	return h.event
}

// Unsubscribe removes the registration. It is idempotent: revoking a stale
// handle is a no-op, never an error. An in-flight dispatch that already took
// its snapshot still invokes the listener once more.
func (h *Handle) Unsubscribe() {
	if h == nil || h.em == nil {
		return
	}
	h.em.unsubscribe(h.event, h.id)
}
