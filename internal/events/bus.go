package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Bus fans events out to subscribers and, when an EventLog is attached,
// records them. Delivery never blocks: a full subscriber misses the event.
type Bus struct {
	mu     sync.RWMutex
	byType map[string][]chan Event
	all    []chan Event
	closed bool

	log    *EventLog // may be nil
	logger *slog.Logger
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		byType: make(map[string][]chan Event),
		log:    log,
		logger: logger.With("component", "events"),
	}
}

// Publish records e and delivers it to the subscribers of its type and to
// every all-events subscriber. Publishing on a closed bus is a no-op.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if b.isClosed() {
		return nil
	}

	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			// Subscribers still get the event.
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	b.deliver(b.byType[e.EventType()], e)
	b.deliver(b.all, e)
	return nil
}

func (b *Bus) isClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// PublishAll publishes events in order.
func (b *Bus) PublishAll(ctx context.Context, events []Event) error {
	for _, e := range events {
		if err := b.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) deliver(subs []chan Event, e Event) {
	for _, ch := range subs {
		select {
		case ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
}

// Subscribe returns a channel for events of a specific type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	b.byType[eventType] = append(b.byType[eventType], ch)
	return ch
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	b.all = append(b.all, ch)
	return ch
}

// SubscribeEntity returns events for one entity, such as a show. It filters
// an all-events subscription; the channel closes when the bus closes.
func (b *Bus) SubscribeEntity(entityType, entityID string, bufferSize int) <-chan Event {
	src := b.SubscribeAll(bufferSize * 10)
	filtered := make(chan Event, bufferSize)

	go func() {
		defer close(filtered)
		for e := range src {
			if e.EntityType() != entityType || e.EntityID() != entityID {
				continue
			}
			select {
			case filtered <- e:
			default:
			}
		}
	}()

	return filtered
}

// Unsubscribe removes and closes a subscription channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	match := func(sub chan Event) bool { return sub == ch }
	for eventType, subs := range b.byType {
		if i := slices.IndexFunc(subs, match); i >= 0 {
			close(subs[i])
			b.byType[eventType] = slices.Delete(subs, i, i+1)
			return
		}
	}
	if i := slices.IndexFunc(b.all, match); i >= 0 {
		close(b.all[i])
		b.all = slices.Delete(b.all, i, i+1)
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, subs := range b.byType {
		for _, ch := range subs {
			close(ch)
		}
	}
	for _, ch := range b.all {
		close(ch)
	}
	b.byType, b.all = nil, nil
	return nil
}
