package events

import "time"

// DomainEvent represents a domain event interface
type DomainEvent interface {
	// GetAggregateID returns the SID of the aggregate that generated the event
	GetAggregateID() string

	// GetEventType returns the type/name of the event
	GetEventType() string

	// GetOccurredAt returns when the event occurred
	GetOccurredAt() time.Time
}

// EventHandler handles a dispatched domain event.
type EventHandler func(event DomainEvent) error

// EventDispatcher publishes domain events to registered handlers.
type EventDispatcher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
	Subscribe(eventType string, handler EventHandler) error
}
