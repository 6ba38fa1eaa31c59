package events

import (
	"sort"
	"sync"
)

// registry keeps listeners of any kind keyed by registration order and
// optionally remembers the last notified value for late listeners
type registry[L any, T any] struct {
	mu                    sync.RWMutex
	listeners             map[uint64]L
	nextID                uint64
	sendLastEventOnListen bool
	lastEvent             T
	hasNotified           bool
}

func newRegistry[L any, T any](sendLastEventOnListen bool) registry[L, T] {
	return registry[L, T]{
		listeners:             make(map[uint64]L),
		sendLastEventOnListen: sendLastEventOnListen,
	}
}

// add registers listener and returns its id plus the value to replay, if any
func (r *registry[L, T]) add(listener L) (uint64, T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	return id, r.lastEvent, r.sendLastEventOnListen && r.hasNotified
}

func (r *registry[L, T]) remove(id uint64) {
	r.mu.Lock()
	delete(r.listeners, id)
	r.mu.Unlock()
}

// record stores value as the last event and returns a snapshot of the listeners
// in registration order
func (r *registry[L, T]) record(value T) []L {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sendLastEventOnListen {
		r.lastEvent = value
		r.hasNotified = true
	}

	ids := make([]uint64, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ordered := make([]L, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, r.listeners[id])
	}
	return ordered
}

func (r *registry[L, T]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}
