package server

import "sync"

// broadcaster fans reload generations out to subscribed event streams.
type broadcaster struct {
	mu        sync.RWMutex
	listeners map[chan uint64]struct{}
	closed    bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		listeners: make(map[chan uint64]struct{}),
	}
}

// Subscribe returns a channel that receives reload generations. The caller
// must call Unsubscribe when done. The channel is closed on shutdown.
func (b *broadcaster) Subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.listeners[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (b *broadcaster) Unsubscribe(ch chan uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.listeners[ch]; !ok {
		return
	}
	delete(b.listeners, ch)
	close(ch)
}

// Broadcast sends gen to all listeners. A listener that has not drained the
// previous generation gets the newer one in its place.
func (b *broadcaster) Broadcast(gen uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.listeners {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- gen:
		default:
		}
	}
}

// Close closes every listener channel.
func (b *broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.listeners {
		close(ch)
	}
	b.listeners = make(map[chan uint64]struct{})
	b.closed = true
}

// Len returns the number of subscribers.
func (b *broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
