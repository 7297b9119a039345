// Package broadcast provides generic in-memory pub/sub.
//
// A MemoryBroadcaster delivers every message to all current subscribers without
// blocking: a subscriber whose buffer is full is closed and removed.
//
//	b := broadcast.NewMemoryBroadcaster[string](16)
//	sub := b.Subscribe(ctx)
//	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//	msg := <-sub.Receive()
package broadcast
