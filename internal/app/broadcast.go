package app

import "sync"

// Update is a published value tagged with its version. Versions start at 1
// and increase by one per Publish.
type Update[T any] struct {
	Version uint64
	Value   T
}

// Broadcast keeps the latest published value and hands it to subscribers.
// Each subscriber has a one-slot channel; a value the subscriber has not
// consumed yet is replaced by the newer one, so a slow reader skips
// intermediate versions but never sees them out of order and never blocks
// the publisher.
type Broadcast[T any] struct {
	mu     sync.Mutex
	latest Update[T]
	subs   map[chan Update[T]]struct{}
}

// NewBroadcast creates an empty broadcast.
func NewBroadcast[T any]() *Broadcast[T] {
	return &Broadcast[T]{
		subs: make(map[chan Update[T]]struct{}),
	}
}

// Publish stores v as the latest value and returns its version.
func (b *Broadcast[T]) Publish(v T) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = Update[T]{Version: b.latest.Version + 1, Value: v}
	for ch := range b.subs {
		offer(ch, b.latest)
	}
	return b.latest.Version
}

// Latest returns the most recent value. ok is false before the first
// Publish.
func (b *Broadcast[T]) Latest() (u Update[T], ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.latest.Version > 0
}

// Subscribe returns a channel receiving the latest value (replayed
// immediately if there is one) and every later one. The returned function
// unsubscribes and closes the channel.
func (b *Broadcast[T]) Subscribe() (<-chan Update[T], func()) {
	ch := make(chan Update[T], 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	if b.latest.Version > 0 {
		ch <- b.latest
	}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			close(ch)
			b.mu.Unlock()
		})
	}
}

// Count returns the number of subscribers.
func (b *Broadcast[T]) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// offer replaces any pending value in ch with u. Caller holds b.mu, so
// nothing else sends on ch concurrently.
func offer[T any](ch chan Update[T], u Update[T]) {
	select {
	case <-ch:
	default:
	}
	ch <- u
}
