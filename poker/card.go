package poker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCards is returned when a card or card set violates the caller
// contract: unknown rank or suit, duplicates, or the wrong number of cards.
var ErrInvalidCards = errors.New("invalid cards")

// Suit represents a card suit
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in canonical deck order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// Symbol returns the unicode symbol for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// String returns the single-letter suit used in card notation ("c", "d", "h", "s").
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string("cdhs"[s])
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank, 2 through 14 (ace high)
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankChars = "23456789TJQKA"

// String returns the single-character rank ("2".."9", "T", "J", "Q", "K", "A").
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Valid reports whether r is within 2..14.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card. Two cards are equal when rank and suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card, rejecting ranks outside 2..14 and unknown suits.
func NewCard(rank Rank, suit Suit) (Card, error) {
	c := Card{Rank: rank, Suit: suit}
	if !c.Valid() {
		return Card{}, fmt.Errorf("%w: rank %d suit %d", ErrInvalidCards, rank, suit)
	}
	return c, nil
}

// Valid reports whether the card has a legal rank and suit.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit <= Spades
}

// String returns the two-character notation, e.g. "As" or "Td".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Pretty returns the card with a suit symbol, e.g. "A♠".
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// ParseCard parses a string like "As", "AS", "td" or "10h" into a Card
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: invalid card string %q", ErrInvalidCards, s)
	}

	idx := strings.IndexByte(rankChars, upper(s[0]))
	if idx < 0 {
		return Card{}, fmt.Errorf("%w: invalid rank %q", ErrInvalidCards, s[0])
	}

	var suit Suit
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("%w: invalid suit %q", ErrInvalidCards, s[1])
	}

	return Card{Rank: Two + Rank(idx), Suit: suit}, nil
}

// ParseCards parses a whitespace or comma separated list of cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures and tests; it panics on bad input.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ValidateCards checks that every card is valid and no card repeats.
func ValidateCards(cards []Card) error {
	var seen [4][15]bool
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidCards, c)
		}
		if seen[c.Suit][c.Rank] {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidCards, c)
		}
		seen[c.Suit][c.Rank] = true
	}
	return nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
