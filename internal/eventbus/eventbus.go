package eventbus

import "sync"

// Event is anything published on the bus.
type Event interface{}

// PlanComputedEvent is published after a suggestion run completes.
type PlanComputedEvent struct {
	Scope      string
	Candidates int
	TopScore   int
}

// ConflictDetectedEvent is published when a proposed slot collides with
// committed events.
type ConflictDetectedEvent struct {
	Scope    string
	EventIDs []string
}

// subscriberBuffer is the channel capacity of one subscriber. A slow
// subscriber loses events rather than blocking the publisher.
const subscriberBuffer = 8

// EventBus decouples the orchestration layer from observers such as the CLI
// or future notification hooks.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the in-process EventBus implementation.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
	closed bool
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Publish delivers the event to every subscriber without blocking. Events a
// subscriber cannot buffer are dropped.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a subscriber and returns its receive channel. The
// channel is closed on Unsubscribe or when the bus shuts down.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[b.nextID] = ch
	b.nextID++
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		if ch == sub {
			delete(b.subs, id)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
