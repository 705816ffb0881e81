package emitter

import (
	"sort"
	"sync"
)

// registry maps event names to ordered listener records. All mutation goes
// through the exclusive lock; dispatch reads a copy-on-read snapshot and
// never holds the lock across a listener invocation.
type registry struct {
	mu        sync.RWMutex
	listeners map[string][]*listenerEntry
}

func newRegistry() *registry {
	return &registry{
		listeners: make(map[string][]*listenerEntry),
	}
}

// add appends an entry and re-sorts the sequence: priority descending,
// insertion order preserved within equal priorities. Returns the new count.
func (r *registry) add(event string, entry *listenerEntry) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append(r.listeners[event], entry)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})
	r.listeners[event] = entries
	return len(entries)
}

// remove deletes the entry with the given id. Reports whether it was present.
func (r *registry) remove(event string, id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.listeners[event]
	for i, e := range entries {
		if e.id == id {
			r.listeners[event] = append(entries[:i], entries[i+1:]...)
			if len(r.listeners[event]) == 0 {
				delete(r.listeners, event)
			}
			return true
		}
	}
	return false
}

// snapshot returns a point-in-time copy of the listener sequence for an
// event. Registry mutation after the copy never affects the snapshot.
func (r *registry) snapshot(event string) []*listenerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.listeners[event]
	if len(entries) == 0 {
		return nil
	}
	snap := make([]*listenerEntry, len(entries))
	copy(snap, entries)
	return snap
}

// count returns the number of listeners registered for an event.
func (r *registry) count(event string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners[event])
}

// totalCount returns the number of listeners across all events.
func (r *registry) totalCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, entries := range r.listeners {
		total += len(entries)
	}
	return total
}

// eventNames returns the names that currently have listeners, sorted.
func (r *registry) eventNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.listeners))
	for name := range r.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// clear removes all listeners for one event.
func (r *registry) clear(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, event)
}

// clearAll removes every listener.
func (r *registry) clearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = make(map[string][]*listenerEntry)
}
