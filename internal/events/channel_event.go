package events

// ChannelEvent provides pub/sub behavior using channels.
// Sends never block. A channel registered with Listen misses values while it is
// full; one registered with ListenLatest drops its oldest value instead, so it
// always ends on the most recent one.
type ChannelEvent[T any] struct {
	listeners registry[channelListener[T], T]
}

type channelListener[T any] struct {
	send chan<- T
	recv <-chan T // set for latest-value listeners
}

// NewChannelEvent creates a new ChannelEvent instance.
// sendLastEventOnListen: if true, a new listener immediately receives the last
// notified value (when there is one)
func NewChannelEvent[T any](sendLastEventOnListen bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{listeners: newRegistry[channelListener[T], T](sendLastEventOnListen)}
}

// Listen registers ch and returns a function that removes it
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}
	return e.listen(channelListener[T]{send: ch})
}

// ListenLatest registers ch for state-like values: when ch is full its oldest
// value is discarded to make room for the new one
func (e *ChannelEvent[T]) ListenLatest(ch chan T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}
	return e.listen(channelListener[T]{send: ch, recv: ch})
}

func (e *ChannelEvent[T]) listen(l channelListener[T]) func() {
	id, last, replay := e.listeners.add(l)
	if replay {
		l.deliver(last)
	}
	return func() { e.listeners.remove(id) }
}

// Notify sends value to every registered channel
func (e *ChannelEvent[T]) Notify(value T) {
	for _, l := range e.listeners.record(value) {
		l.deliver(value)
	}
}

// ListenerCount returns the current number of registered listeners
func (e *ChannelEvent[T]) ListenerCount() int {
	return e.listeners.count()
}

func (l channelListener[T]) deliver(value T) {
	for {
		select {
		case l.send <- value:
			return
		default:
		}
		if l.recv == nil {
			return
		}
		// Full: discard the oldest value and try again
		select {
		case <-l.recv:
		default:
		}
	}
}
