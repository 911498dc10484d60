package game

import (
	"slices"
	"sync"
	"time"

	"github.com/nier2kirito/PokerBots/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStarted  EventType = "hand_started"
	EventTypeSeatActed    EventType = "seat_acted"
	EventTypeHandResolved EventType = "hand_resolved"
	EventTypeRestarted    EventType = "restarted"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartedEvent is published after the deal and blinds, before any seat acts.
type HandStartedEvent struct {
	HandNumber int
	UserSeat   Seat
	UserHole   []deck.Card
	timestamp  time.Time
}

func (e HandStartedEvent) EventType() EventType { return EventTypeHandStarted }
func (e HandStartedEvent) Timestamp() time.Time { return e.timestamp }

// NewHandStartedEvent creates a new hand started event
func NewHandStartedEvent(handNumber int, userSeat Seat, userHole []deck.Card) HandStartedEvent {
	return HandStartedEvent{
		HandNumber: handNumber,
		UserSeat:   userSeat,
		UserHole:   slices.Clone(userHole),
		timestamp:  time.Now(),
	}
}

// SeatActedEvent is published whenever a seat's decision is recorded.
type SeatActedEvent struct {
	Seat         Seat
	Decision     Decision
	HandKey      string
	User         bool
	MissingCards bool
	Bet          Chips
	Pot          Chips
	timestamp    time.Time
}

func (e SeatActedEvent) EventType() EventType { return EventTypeSeatActed }
func (e SeatActedEvent) Timestamp() time.Time { return e.timestamp }

// NewSeatActedEvent creates a new seat acted event
func NewSeatActedEvent(seat Seat, d Decision, handKey string, user, missingCards bool, bet, pot Chips) SeatActedEvent {
	return SeatActedEvent{
		Seat:         seat,
		Decision:     d,
		HandKey:      handKey,
		User:         user,
		MissingCards: missingCards,
		Bet:          bet,
		Pot:          pot,
		timestamp:    time.Now(),
	}
}

// HandResolvedEvent is published once the pot has been settled.
type HandResolvedEvent struct {
	HandNumber int
	UserSeat   Seat
	Hole       [NumSeats][]deck.Card
	Community  []deck.Card
	Decisions  [NumSeats]Decision
	Result     Result
	UserNet    Chips
	Bankroll   Chips
	timestamp  time.Time
}

func (e HandResolvedEvent) EventType() EventType { return EventTypeHandResolved }
func (e HandResolvedEvent) Timestamp() time.Time { return e.timestamp }

// NewHandResolvedEvent creates a new hand resolved event from the settled hand.
func NewHandResolvedEvent(handNumber int, h *HandState, userNet, bankroll Chips) HandResolvedEvent {
	e := HandResolvedEvent{
		HandNumber: handNumber,
		UserSeat:   h.UserSeat,
		Community:  slices.Clone(h.Community),
		Decisions:  h.Decisions,
		UserNet:    userNet,
		Bankroll:   bankroll,
		timestamp:  time.Now(),
	}
	for i := range h.Hole {
		e.Hole[i] = slices.Clone(h.Hole[i])
	}
	if h.Result != nil {
		e.Result = *h.Result
	}
	return e
}

// RestartedEvent is published when a session is reset.
type RestartedEvent struct {
	timestamp time.Time
}

func (e RestartedEvent) EventType() EventType { return EventTypeRestarted }
func (e RestartedEvent) Timestamp() time.Time { return e.timestamp }

// NewRestartedEvent creates a new restarted event
func NewRestartedEvent() RestartedEvent {
	return RestartedEvent{timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers run on the
// publishing goroutine in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Function subscribers cannot be compared and
// stay subscribed for the bus's lifetime.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, isFunc := sub.(EventSubscriberFunc); isFunc {
			continue
		}
		if sub == subscriber {
			bus.subscribers = slices.Delete(bus.subscribers, i, i+1)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := slices.Clone(bus.subscribers)
	bus.mu.RUnlock()

	for _, sub := range subs {
		sub.OnEvent(event)
	}
}
