package atom

import (
	"sync"
)

// subscriber pairs a handler with its registration identity.
type subscriber[T any] struct {
	id   uint64
	fn   func(T)
	once bool
}

// Bus is an ordered, synchronous fan-out event bus over payloads of
// type T.
//
// Emit invokes subscribers in subscription order over a snapshot of
// the subscriber list taken when the emission starts, so handlers that
// unsubscribe (themselves or others) mid-emission do not affect the
// handlers already scheduled for that pass. The bus does not recover
// handler panics; a panicking handler interrupts the remaining
// handlers of that pass and propagates to Emit's caller.
type Bus[T any] struct {
	// mu protects subs and nextID
	mu sync.Mutex

	// subs holds subscribers in subscription order
	subs []subscriber[T]

	// nextID is the next subscription identity
	nextID uint64
}

// NewBus creates an empty event bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// On subscribes a handler and returns a function that removes it.
// The returned function is idempotent.
func (b *Bus[T]) On(fn func(T)) func() {
	return b.subscribe(fn, false)
}

// Once subscribes a handler that is removed automatically after its
// first invocation. The returned function removes it earlier.
func (b *Bus[T]) Once(fn func(T)) func() {
	return b.subscribe(fn, true)
}

// Emit delivers v synchronously to all subscribers present when the
// call starts, in subscription order.
func (b *Bus[T]) Emit(v T) {
	b.mu.Lock()
	snapshot := make([]subscriber[T], len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		if s.once {
			// Remove before invoking so a recursive emission
			// cannot fire the handler a second time.
			b.remove(s.id)
		}
		s.fn(v)
	}
}

// Clear drops all subscribers.
func (b *Bus[T]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
}

// Len returns the number of current subscribers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// subscribe appends a subscriber and returns its removal function.
func (b *Bus[T]) subscribe(fn func(T), once bool) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn, once: once})
	b.mu.Unlock()

	return func() {
		b.remove(id)
	}
}

// remove deletes the subscriber with the given identity, if present.
func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}
