package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/poker"
)

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

// handConfig holds all configuration for creating a hand.
type handConfig struct {
	id          string
	number      int
	names       []string
	deck        *poker.Deck // If provided, dealt as-is without shuffling
	minBet      int
	lastAwardID uint64
	bus         EventBus
	logger      *log.Logger
}

func defaultHandConfig() *handConfig {
	return &handConfig{
		minBet: 1,
		logger: log.New(io.Discard),
	}
}

// WithHandID sets the hand identifier reported in events and snapshots.
func WithHandID(id string) HandOption {
	return func(c *handConfig) {
		c.id = id
	}
}

// WithHandNumber sets the session-relative hand number.
func WithHandNumber(n int) HandOption {
	return func(c *handConfig) {
		c.number = n
	}
}

// WithNames sets display names; missing names default to "Seat N".
func WithNames(names []string) HandOption {
	return func(c *handConfig) {
		c.names = names
	}
}

// WithDeck sets a specific pre-arranged deck.
// The deck is dealt in order and never shuffled.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}

// WithMinBet sets the smallest opening bet. Default is 1.
func WithMinBet(n int) HandOption {
	return func(c *handConfig) {
		if n > 0 {
			c.minBet = n
		}
	}
}

// WithLastAwardID continues award transaction ids from a previous hand.
func WithLastAwardID(id uint64) HandOption {
	return func(c *handConfig) {
		c.lastAwardID = id
	}
}

// WithEventBus publishes every event of the hand to bus as it happens.
func WithEventBus(bus EventBus) HandOption {
	return func(c *handConfig) {
		c.bus = bus
	}
}

// WithLogger sets the logger; the hand adds its id as a field.
func WithLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
