package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/forgeburn/tagengine/core"
)

// Bus is a synchronous, in-process event bus. Publish calls every matching
// handler in subscription order and returns the first error encountered;
// it never logs or performs I/O (the engine never logs on its own —
// callers decide whether/how to surface a handler's returned error).
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	nextID   int
}

type subscription struct {
	id      string
	ref     *core.Ref
	handler Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]subscription)}
}

// Subscribe registers handler for events whose Ref equals ref (by value).
// Returns a subscription ID usable with Unsubscribe.
func (b *Bus) Subscribe(ref *core.Ref, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := fmt.Sprintf("sub-%d", b.nextID)
	key := ref.String()
	b.handlers[key] = append(b.handlers[key], subscription{id: id, ref: ref, handler: handler})
	return id
}

// Unsubscribe removes a subscription by ID. No-op if not found.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, subs := range b.handlers {
		for i, s := range subs {
			if s.id == id {
				b.handlers[key] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers evt to every handler subscribed to evt.Ref(), in
// subscription order, using context.Background().
func (b *Bus) Publish(evt Event) error {
	return b.PublishWithContext(context.Background(), evt)
}

// PublishWithContext delivers evt with the given context.
func (b *Bus) PublishWithContext(ctx context.Context, evt Event) error {
	ref := evt.Ref()
	if ref == nil {
		return nil
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[ref.String()]))
	copy(subs, b.handlers[ref.String()])
	b.mu.RUnlock()

	var firstErr error
	for _, s := range subs {
		if err := s.handler(ctx, evt); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Clear removes all subscriptions. Useful between test cases and between
// encounters when a host wants a clean bus.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[string][]subscription)
}
