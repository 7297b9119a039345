package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster is an in-process Broadcaster.
type MemoryBroadcaster[T any] struct {
	subs    map[*subscriber[T]]struct{}
	size    int
	closed  bool
	done    chan struct{}
	mu      sync.RWMutex
	watches sync.WaitGroup
}

// NewMemoryBroadcaster creates a broadcaster whose subscribers buffer up to bufferSize messages (minimum 1).
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		subs: make(map[*subscriber[T]]struct{}),
		size: max(bufferSize, 1),
		done: make(chan struct{}),
	}
}

// Subscribe returns an already-closed subscriber when the broadcaster is closed.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	sub := newSubscriber[T](b.size)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		_ = sub.Close()
		return sub
	}
	b.subs[sub] = struct{}{}

	if ctxDone := ctx.Done(); ctxDone != nil {
		b.watches.Add(1)
		go func() {
			defer b.watches.Done()
			select {
			case <-ctxDone:
				b.remove(sub)
			case <-b.done:
			}
		}()
	}
	return sub
}

// Broadcast queues msg for every subscriber and never blocks.
func (b *MemoryBroadcaster[T]) Broadcast(_ context.Context, msg Message[T]) error {
	b.mu.RLock()
	var slow []*subscriber[T]
	if !b.closed {
		for sub := range b.subs {
			if !sub.offer(msg) {
				slow = append(slow, sub)
			}
		}
	}
	b.mu.RUnlock()

	for _, sub := range slow {
		b.remove(sub)
	}
	return nil
}

// Len returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber. Later broadcasts are ignored.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	for sub := range b.subs {
		_ = sub.Close()
	}
	clear(b.subs)
	b.mu.Unlock()

	b.watches.Wait()
	return nil
}

func (b *MemoryBroadcaster[T]) remove(sub *subscriber[T]) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
	_ = sub.Close()
}
