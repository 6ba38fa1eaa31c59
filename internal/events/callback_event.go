package events

// CallbackEvent provides pub/sub behavior with type-safe callbacks.
// Callbacks run synchronously on the notifying goroutine, in the order they
// were registered.
type CallbackEvent[T any] struct {
	listeners registry[func(T), T]
}

// NewCallbackEvent creates a new CallbackEvent instance.
// sendLastEventOnListen: if true, a new listener is immediately called with the
// last notified value (when there is one)
func NewCallbackEvent[T any](sendLastEventOnListen bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{listeners: newRegistry[func(T), T](sendLastEventOnListen)}
}

// Listen registers callback and returns a function that removes it.
// The removal function may be called any number of times.
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}

	id, last, replay := e.listeners.add(callback)
	// Outside the lock so the callback may call back into the event
	if replay {
		callback(last)
	}

	return func() { e.listeners.remove(id) }
}

// Notify calls every registered callback with value
func (e *CallbackEvent[T]) Notify(value T) {
	for _, callback := range e.listeners.record(value) {
		callback(value)
	}
}

// ListenerCount returns the current number of registered listeners
func (e *CallbackEvent[T]) ListenerCount() int {
	return e.listeners.count()
}
