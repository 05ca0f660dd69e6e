package streaming

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultChannelBuffer = 64

// subscriber holds a channel and filter for a single subscriber.
type subscriber struct {
	ch     chan StreamEvent
	filter EventFilter
}

// MemoryHub is an in-memory EventHub. Beyond fan-out it retains the most
// recent event of each type and replays the retained events matching a
// new subscriber's filter into its channel before live delivery begins.
// A webview that attaches mid-session therefore sees the current model,
// playback state, and shown step right away instead of a blank canvas
// until the next change.
type MemoryHub struct {
	mu       sync.Mutex
	subs     map[uint64]*subscriber
	retained []StreamEvent // one slot per event type, first-published order
	seq      atomic.Uint64
}

// NewMemoryHub creates a new MemoryHub.
func NewMemoryHub() *MemoryHub {
	return &MemoryHub{
		subs: make(map[uint64]*subscriber),
	}
}

// Publish retains the event as the latest of its type and sends it to
// all matching subscribers. Non-blocking: if a subscriber's channel is
// full the event is dropped.
func (h *MemoryHub) Publish(ctx context.Context, event StreamEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.retainLocked(event)

	for _, sub := range h.subs {
		if !matchFilter(sub.filter, event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// backpressure: drop event for slow subscriber
		}
	}
	return nil
}

// Subscribe creates a new subscription filtered by the given EventFilter.
// Retained events matching the filter are queued on the returned channel
// before any live event. Returns a receive-only channel, a cancel
// function, and any error.
func (h *MemoryHub) Subscribe(ctx context.Context, filter EventFilter) (<-chan StreamEvent, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	id := h.seq.Add(1)
	ch := make(chan StreamEvent, defaultChannelBuffer)

	h.mu.Lock()
	for _, event := range h.retained {
		if matchFilter(filter, event) {
			ch <- event
		}
	}
	h.subs[id] = &subscriber{ch: ch, filter: filter}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}

	return ch, cancel, nil
}

// retainLocked records event as the latest of its type. Caller holds the
// lock. The per-type slot keeps replay bounded: one event per type, in
// the order the types were first published.
func (h *MemoryHub) retainLocked(event StreamEvent) {
	for i := range h.retained {
		if h.retained[i].EventType == event.EventType {
			h.retained[i] = event
			return
		}
	}
	h.retained = append(h.retained, event)
}

// matchFilter returns true if the event passes the filter criteria.
func matchFilter(f EventFilter, e StreamEvent) bool {
	if f.SessionID != "" && f.SessionID != e.SessionID {
		return false
	}
	if len(f.EventTypes) > 0 {
		found := false
		for _, t := range f.EventTypes {
			if t == e.EventType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
