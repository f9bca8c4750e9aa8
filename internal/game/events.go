package game

import (
	"github.com/lox/holdem-engine/poker"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for the outbound event stream
const (
	EventTypeHandStarted    EventType = "hand_started"
	EventTypeSeatActed      EventType = "seat_acted"
	EventTypePotChanged     EventType = "pot_changed"
	EventTypeStreetAdvanced EventType = "street_advanced"
	EventTypeHandsRevealed  EventType = "hands_revealed"
	EventTypeHandEnded      EventType = "hand_ended"
	EventTypeHandAborted    EventType = "hand_aborted"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything the engine reports. Events carry no wall-clock time, so
// the same seed and actions always produce the same stream.
type Event interface {
	EventType() EventType
	Meta() EventMeta
}

// EventMeta identifies an event within its hand. Seq starts at 1 and
// increases by one per event.
type EventMeta struct {
	HandID string
	Seq    int
}

// Meta returns the identifying fields.
func (m EventMeta) Meta() EventMeta { return m }

// HandStarted is published once stacks are seated, before any card is dealt.
type HandStarted struct {
	EventMeta
	HandNumber int
	Names      []string
	Stacks     []int
}

// SeatActed is published for every accepted action, with the kind the
// action resolved to and the chips it moved.
type SeatActed struct {
	EventMeta
	Street Street
	Seat   int
	Kind   ActionKind
	Amount int // chips added by this action
	Total  int // seat's commitment on the street afterwards
}

// PotChanged is published whenever chips move into, within or out of the pot.
type PotChanged struct {
	EventMeta
	BankedPot int
	Committed []int
}

// Total returns the banked pot plus live street commitments.
func (e PotChanged) Total() int {
	total := e.BankedPot
	for _, c := range e.Committed {
		total += c
	}
	return total
}

// StreetAdvanced is published when community cards are dealt.
type StreetAdvanced struct {
	EventMeta
	Street   Street
	NewCards []poker.Card
	Board    []poker.Card
}

// HandsRevealed is published when hole cards are turned face up, either at
// showdown or when betting stops with cards still to come.
type HandsRevealed struct {
	EventMeta
	Hands map[int][]poker.Card
}

// HandEnded is published once, after the pot has been paid out.
type HandEnded struct {
	EventMeta
	Reason  EndReason
	Winners []int
	Amounts []int // per seat
	Board   []poker.Card
	AwardID uint64
}

// HandAborted is published instead of HandEnded when the hand cannot finish.
// Every seat gets its contribution back.
type HandAborted struct {
	EventMeta
	Cause   string
	Refunds []int // per seat
}

func (HandStarted) EventType() EventType    { return EventTypeHandStarted }
func (SeatActed) EventType() EventType      { return EventTypeSeatActed }
func (PotChanged) EventType() EventType     { return EventTypePotChanged }
func (StreetAdvanced) EventType() EventType { return EventTypeStreetAdvanced }
func (HandsRevealed) EventType() EventType  { return EventTypeHandsRevealed }
func (HandEnded) EventType() EventType      { return EventTypeHandEnded }
func (HandAborted) EventType() EventType    { return EventTypeHandAborted }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery is
// synchronous, in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventLog records events in order. It doubles as a subscriber, so a log can
// be attached to a bus to capture a whole session.
type EventLog struct {
	events []Event
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// OnEvent appends event.
func (l *EventLog) OnEvent(event Event) {
	l.Append(event)
}

// Append adds event to the end of the log.
func (l *EventLog) Append(event Event) {
	l.events = append(l.events, event)
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Events returns a copy of the recorded events.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Replay delivers every recorded event to sub, in order.
func (l *EventLog) Replay(sub EventSubscriber) {
	for _, e := range l.events {
		sub.OnEvent(e)
	}
}
