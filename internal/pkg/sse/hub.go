package sse

import (
	"sync"
)

// Event names published by the core. Delivery is best-effort: every
// event is only a hint to re-query the store, never a data carrier the
// grid depends on.
const (
	EventPunchChanged = "punch.changed"
	EventPeriodLocked = "period.locked"
)

// Event is one change notification for an owner's dashboards.
type Event struct {
	OwnerID string
	Event   string
	Data    interface{}
}

// Hub fans punch and pay-period change events out to the owner's
// connected dashboards.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for one owner and returns the event
// channel plus its cleanup function.
func (h *Hub) Subscribe(ownerID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[ownerID] == nil {
		h.subscribers[ownerID] = make(map[chan Event]struct{})
	}
	h.subscribers[ownerID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[ownerID], ch)
		close(ch)
		if len(h.subscribers[ownerID]) == 0 {
			delete(h.subscribers, ownerID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all of an owner's listeners. Slow listeners
// are skipped rather than blocked on; they re-query on their next poll.
func (h *Hub) Publish(ownerID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[ownerID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of active listeners for an owner.
func (h *Hub) SubscriberCount(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[ownerID]; ok {
		return len(subs)
	}
	return 0
}
