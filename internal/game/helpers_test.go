package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// stackedDeck builds a deck that deals holes[i] to the i-th funded seat and
// then board as flop, turn and river. Remaining cards follow in canonical
// order.
func stackedDeck(t *testing.T, holes []string, board string) *poker.Deck {
	t.Helper()

	var hands [][]poker.Card
	for _, h := range holes {
		cards := poker.MustParseCards(h)
		require.Len(t, cards, 2, "hole cards %q", h)
		hands = append(hands, cards)
	}

	var order []poker.Card
	for pass := range 2 {
		for _, h := range hands {
			order = append(order, h[pass])
		}
	}
	order = append(order, poker.MustParseCards(board)...)

	used := make(map[poker.Card]bool)
	for _, c := range order {
		used[c] = true
	}
	rest, err := poker.NewDeck(nil).Draw(52)
	require.NoError(t, err)
	for _, c := range rest {
		if !used[c] {
			order = append(order, c)
		}
	}

	deck, err := poker.NewDeckFromCards(order...)
	require.NoError(t, err)
	return deck
}

// shortDeck deals exactly the given cards and nothing more.
func shortDeck(t *testing.T, cards string) *poker.Deck {
	t.Helper()
	deck, err := poker.NewDeckFromCards(poker.MustParseCards(cards)...)
	require.NoError(t, err)
	return deck
}

func newTestHand(t *testing.T, stacks []int, opts ...HandOption) *Hand {
	t.Helper()
	h, err := NewHand(randutil.New(42), stacks, opts...)
	require.NoError(t, err)
	return h
}

// play submits a sequence of seat/action pairs, failing on the first error.
func play(t *testing.T, h *Hand, steps ...step) {
	t.Helper()
	for i, s := range steps {
		require.Equal(t, s.seat, h.ActiveSeat, "step %d: wrong seat to act", i)
		require.NoError(t, h.SubmitAction(s.seat, s.action), "step %d: seat %d %s", i, s.seat, s.action)
	}
}

type step struct {
	seat   int
	action Action
}

func at(seat int, a Action) step {
	return step{seat: seat, action: a}
}

// checkAround checks with every seat still owing an action on this street.
func checkAround(t *testing.T, h *Hand) {
	t.Helper()
	street := h.Street
	for !h.IsComplete() && h.Street == street && h.ActiveSeat >= 0 {
		require.NoError(t, h.SubmitAction(h.ActiveSeat, CheckAction()))
	}
}

func eventsOfType[T Event](events []Event) []T {
	var out []T
	for _, e := range events {
		if te, ok := e.(T); ok {
			out = append(out, te)
		}
	}
	return out
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
