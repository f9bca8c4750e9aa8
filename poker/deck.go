package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when a draw asks for more cards than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered sequence of unique cards. It is mutated only by
// Shuffle and Draw.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck returns the 52 cards in canonical order (clubs..spades, two..ace).
// Call Shuffle before dealing.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
	return d
}

// NewDeckFromCards builds a stacked deck that deals cards in the given order.
// The cards must be valid and unique; fewer than 52 is allowed.
func NewDeckFromCards(cards ...Card) (*Deck, error) {
	if err := ValidateCards(cards); err != nil {
		return nil, err
	}
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d, nil
}

// Shuffle resets the draw position and shuffles the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the next n cards. It draws nothing when fewer
// than n remain.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: cannot draw %d cards", ErrInvalidCards, n)
	}
	if d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, %d remaining", ErrDeckExhausted, n, d.Remaining())
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
