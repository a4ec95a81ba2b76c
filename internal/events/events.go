// Package events provides the event bus connecting background loading work
// to the presentation shell. Background goroutines publish; the status bar
// and diagnostics subscribe.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// EventType defines the types of events that can be emitted.
type EventType string

const (
	EventListingLoaded    EventType = "listing_loaded"    // a directory level finished enumerating
	EventListingFailed    EventType = "listing_failed"    // enumeration failed (absorbed, not fatal)
	EventListingTruncated EventType = "listing_truncated" // more entries exist than the cap allows
	EventPreviewDelivered EventType = "preview_delivered" // preview content reached the pane
	EventPreviewFailed    EventType = "preview_failed"    // decode failed, icon fallback shown
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// ListingEvent reports a finished or failed directory enumeration.
type ListingEvent struct {
	BaseEvent
	Path       string
	Count      int // modeled entries
	TotalFound int // visible entries including past the cap
	Truncated  bool
	Err        error // set for EventListingFailed
}

// PreviewEvent reports preview delivery or decode failure for a path.
type PreviewEvent struct {
	BaseEvent
	Path string
	Mode string
	Err  error
}

const defaultBuffer = 64

// EventBus manages event subscriptions and publishing. Publishing is
// non-blocking: a subscriber with a full buffer drops events rather than
// stalling a loader goroutine.
type EventBus struct {
	subscribers   map[EventType][]chan Event
	all           []chan Event
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64
}

// NewEventBus creates a new event bus with the specified buffer size per
// subscriber channel. Non-positive sizes use the default.
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = defaultBuffer
	}
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type.
func (eb *EventBus) Subscribe(eventType EventType) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to all events.
func (eb *EventBus) SubscribeAll() <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.all = append(eb.all, ch)
	return ch
}

// Publish sends an event to all subscribers without blocking.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	for _, ch := range eb.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
	for _, ch := range eb.all {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
}

// PublishListing is a convenience method for listing results.
func (eb *EventBus) PublishListing(path string, count, totalFound int, truncated bool) {
	eb.Publish(&ListingEvent{
		BaseEvent:  BaseEvent{EventType: EventListingLoaded, Time: time.Now()},
		Path:       path,
		Count:      count,
		TotalFound: totalFound,
		Truncated:  truncated,
	})
	if truncated {
		eb.Publish(&ListingEvent{
			BaseEvent:  BaseEvent{EventType: EventListingTruncated, Time: time.Now()},
			Path:       path,
			Count:      count,
			TotalFound: totalFound,
			Truncated:  true,
		})
	}
}

// PublishListingError is a convenience method for absorbed enumeration
// failures.
func (eb *EventBus) PublishListingError(path string, err error) {
	eb.Publish(&ListingEvent{
		BaseEvent: BaseEvent{EventType: EventListingFailed, Time: time.Now()},
		Path:      path,
		Err:       err,
	})
}

// PublishPreview is a convenience method for preview delivery.
func (eb *EventBus) PublishPreview(path, mode string, err error) {
	t := EventPreviewDelivered
	if err != nil {
		t = EventPreviewFailed
	}
	eb.Publish(&PreviewEvent{
		BaseEvent: BaseEvent{EventType: t, Time: time.Now()},
		Path:      path,
		Mode:      mode,
		Err:       err,
	})
}

// Unsubscribe removes a subscription channel from a specific event type.
func (eb *EventBus) Unsubscribe(eventType EventType, ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	subscribers := eb.subscribers[eventType]
	for i, subCh := range subscribers {
		if subCh == ch {
			subscribers[i] = subscribers[len(subscribers)-1]
			eb.subscribers[eventType] = subscribers[:len(subscribers)-1]
			break
		}
	}
}

// Close shuts down the event bus and closes all channels.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}
	eb.closed = true

	for _, channels := range eb.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	for _, ch := range eb.all {
		close(ch)
	}
}

// DroppedEventCount returns how many events were dropped due to full
// subscriber buffers.
func (eb *EventBus) DroppedEventCount() int64 {
	return eb.droppedEvents.Load()
}
