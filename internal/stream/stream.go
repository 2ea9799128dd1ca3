// Package stream fans audit events out to live subscribers, backing the
// compliance dashboard's event feed.
package stream

import (
	"context"
	"sync"

	"lexora.app/internal/audit"
)

// Hub distributes published events to all active subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan audit.Event
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan audit.Event)}
}

// Subscribe registers a subscriber and returns a channel which will receive
// events. The channel is closed when the provided context ends.
func (h *Hub) Subscribe(ctx context.Context) <-chan audit.Event {
	ch := make(chan audit.Event, 16)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}

// Publish fans the event out to all subscribers.
func (h *Hub) Publish(ev audit.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
}

// Subscribers reports the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
