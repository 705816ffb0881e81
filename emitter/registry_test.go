package emitter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddAndCount(t *testing.T) {
	r := newRegistry()

	r.add("a.event", &listenerEntry{id: 1})
	r.add("a.event", &listenerEntry{id: 2})
	r.add("b.event", &listenerEntry{id: 3})

	assert.Equal(t, 2, r.count("a.event"))
	assert.Equal(t, 1, r.count("b.event"))
	assert.Equal(t, 0, r.count("missing"))
	assert.Equal(t, 3, r.totalCount())
}

func TestRegistry_PriorityStableOrder(t *testing.T) {
	r := newRegistry()

	r.add("e", &listenerEntry{id: 1, priority: 0})
	r.add("e", &listenerEntry{id: 2, priority: 5})
	r.add("e", &listenerEntry{id: 3, priority: 0})
	r.add("e", &listenerEntry{id: 4, priority: 5})

	snap := r.snapshot("e")
	require.Len(t, snap, 4)

	ids := []uint64{snap[0].id, snap[1].id, snap[2].id, snap[3].id}
	// priority descending, insertion order within equal priorities
	assert.Equal(t, []uint64{2, 4, 1, 3}, ids)
}

func TestRegistry_Remove(t *testing.T) {
	r := newRegistry()

	r.add("e", &listenerEntry{id: 1})
	r.add("e", &listenerEntry{id: 2})

	assert.True(t, r.remove("e", 1))
	assert.Equal(t, 1, r.count("e"))

	// removing again is a no-op
	assert.False(t, r.remove("e", 1))
	assert.Equal(t, 1, r.count("e"))

	assert.False(t, r.remove("missing", 99))
}

func TestRegistry_RemoveLast_DropsEvent(t *testing.T) {
	r := newRegistry()

	r.add("e", &listenerEntry{id: 1})
	require.True(t, r.remove("e", 1))

	assert.Empty(t, r.eventNames())
}

func TestRegistry_Snapshot_IsolatedFromMutation(t *testing.T) {
	r := newRegistry()

	r.add("e", &listenerEntry{id: 1})
	r.add("e", &listenerEntry{id: 2})

	snap := r.snapshot("e")
	require.Len(t, snap, 2)

	// mutations after the snapshot never affect it
	r.add("e", &listenerEntry{id: 3})
	r.remove("e", 1)

	assert.Len(t, snap, 2)
	assert.Equal(t, uint64(1), snap[0].id)
	assert.Equal(t, uint64(2), snap[1].id)
	assert.Equal(t, 2, r.count("e"))
}

func TestRegistry_Snapshot_Empty(t *testing.T) {
	r := newRegistry()
	assert.Nil(t, r.snapshot("missing"))
}

func TestRegistry_EventNames_Sorted(t *testing.T) {
	r := newRegistry()

	r.add("c", &listenerEntry{id: 1})
	r.add("a", &listenerEntry{id: 2})
	r.add("b", &listenerEntry{id: 3})

	assert.Equal(t, []string{"a", "b", "c"}, r.eventNames())
}

func TestRegistry_ClearAndClearAll(t *testing.T) {
	r := newRegistry()

	r.add("a", &listenerEntry{id: 1})
	r.add("b", &listenerEntry{id: 2})

	r.clear("a")
	assert.Equal(t, 0, r.count("a"))
	assert.Equal(t, 1, r.count("b"))

	r.clearAll()
	assert.Equal(t, 0, r.totalCount())
}

func TestRegistry_ConcurrentMutation(t *testing.T) {
	r := newRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		id := uint64(i + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.add("e", &listenerEntry{id: id})
			_ = r.snapshot("e")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, r.count("e"))
}

func TestListenerEntry_Claim(t *testing.T) {
	e := &listenerEntry{once: true}

	assert.True(t, e.claim())
	assert.False(t, e.claim())
}
