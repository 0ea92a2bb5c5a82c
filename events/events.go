package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated      EventType = "user_created"
	EventTypeStarsAdded       EventType = "stars_added"
	EventTypeStarsSpent       EventType = "stars_spent"
	EventTypeCharacterAdded   EventType = "character_added"
	EventTypeCharacterDeleted EventType = "character_deleted"
	EventTypeLevelChanged     EventType = "level_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent is emitted the first time a player is seen
type UserCreatedEvent struct {
	DiscordID    int64
	Username     string
	InitialStars int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// StarsAddedEvent represents a change of a player's unspent pool
type StarsAddedEvent struct {
	DiscordID       int64
	Amount          int64
	Reason          *string
	NewUnspentStars int64
}

func (e StarsAddedEvent) Type() EventType {
	return EventTypeStarsAdded
}

// StarsSpentEvent represents a change of a character's stars
type StarsSpentEvent struct {
	DiscordID     int64
	CharacterID   int64
	CharacterName string
	Amount        int64
	Reason        *string
	NewStars      int64
}

func (e StarsSpentEvent) Type() EventType {
	return EventTypeStarsSpent
}

// CharacterAddedEvent represents a newly created character
type CharacterAddedEvent struct {
	DiscordID   int64
	CharacterID int64
	Name        string
	Stars       int64
}

func (e CharacterAddedEvent) Type() EventType {
	return EventTypeCharacterAdded
}

// CharacterDeletedEvent represents a removed character and its final state
type CharacterDeletedEvent struct {
	DiscordID   int64
	CharacterID int64
	Name        string
	Stars       int64
	Dead        bool
}

func (e CharacterDeletedEvent) Type() EventType {
	return EventTypeCharacterDeleted
}

// LevelChangedEvent is emitted when a star change moves a character across a level threshold
type LevelChangedEvent struct {
	DiscordID     int64
	CharacterID   int64
	CharacterName string
	OldLevel      int
	NewLevel      int
}

func (e LevelChangedEvent) Type() EventType {
	return EventTypeLevelChanged
}

// IsLevelUp reports whether the character gained levels
func (e LevelChangedEvent) IsLevelUp() bool {
	return e.NewLevel > e.OldLevel
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type on main event bus")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers on main event bus")

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
			}).Debug("Calling event handler")
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events published inside a unit of work until the
// transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

// NewTransactionalBus creates a transactional bus flushing into real
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush or Discard
func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Flush emits pending events on the underlying bus. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events from transactional bus to main event bus")

	if b.real == nil {
		b.pending = nil
		return nil
	}

	// Handlers outlive the request that committed the transaction
	eventCtx := context.WithoutCancel(ctx)

	for _, ev := range b.pending {
		log.WithFields(log.Fields{
			"eventType": ev.Type(),
		}).Debug("Emitting event to main event bus")
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	log.Debug("All pending events flushed, transactional bus cleared")
	return nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
