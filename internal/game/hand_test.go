package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

func TestNewHandDealsAndOpensPreflop(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{100, 100, 100, 100}, WithHandID("h1"), WithNames([]string{"alice", "bob"}))

	assert.Equal(t, Preflop, h.Street)
	assert.Equal(t, 0, h.ActiveSeat, "seat 0 acts first")
	assert.Empty(t, h.Board)
	assert.Equal(t, 52-8, h.deck.Remaining())
	assert.Equal(t, "alice", h.Players[0].Name)
	assert.Equal(t, "Seat 2", h.Players[2].Name)

	var dealt []poker.Card
	for _, p := range h.Players {
		require.Len(t, p.HoleCards, 2)
		dealt = append(dealt, p.HoleCards...)
	}
	assert.NoError(t, poker.ValidateCards(dealt), "no card dealt twice")
}

func TestNewHandDealOrder(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, []string{"As Ad", "Ks Kd", "Qs Qd", "Js Jd"}, "2c 3c 4c 5c 6c")
	h := newTestHand(t, []int{100, 100, 100, 100}, WithDeck(deck))

	assert.Equal(t, poker.MustParseCards("As Ad"), h.Players[0].HoleCards)
	assert.Equal(t, poker.MustParseCards("Js Jd"), h.Players[3].HoleCards)
}

func TestNewHandSeatsWithoutChipsSitOut(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{0, 100, 100, 0})

	assert.True(t, h.Players[0].SittingOut)
	assert.Empty(t, h.Players[0].HoleCards)
	assert.True(t, h.Players[3].SittingOut)
	assert.Len(t, h.Players[1].HoleCards, 2)
	assert.Equal(t, 1, h.ActiveSeat, "first funded seat acts first")

	play(t, h, at(1, BetAction(10)), at(2, FoldAction()))
	require.True(t, h.IsComplete())
	assert.Equal(t, []int{0, 100, 100, 0}, h.Ledger.Stacks())
}

func TestNewHandRejectsBadSetup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stacks []int
	}{
		{"one funded seat", []int{100, 0, 0, 0}},
		{"no chips", []int{0, 0, 0, 0}},
		{"three seats", []int{100, 100, 100}},
		{"negative stack", []int{100, 100, -5, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, err := NewHand(randutil.New(1), tt.stacks)
			assert.Nil(t, h)
			assert.ErrorIs(t, err, ErrInvalidSetup)
			assert.ErrorIs(t, err, ErrContractViolation)
		})
	}
}

func TestNewHandShortDeck(t *testing.T) {
	t.Parallel()

	h, err := NewHand(randutil.New(1), []int{100, 100, 100, 100}, WithDeck(shortDeck(t, "As Ks Qs Js Ad Kd Qd")))
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.ErrorIs(t, err, poker.ErrDeckExhausted)
}

func TestUncontestedWin(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{100, 100, 100, 100})
	play(t, h,
		at(0, BetAction(10)),
		at(1, CallAction()),
		at(2, FoldAction()),
		at(3, FoldAction()),
	)
	require.Equal(t, Flop, h.Street)
	require.Len(t, h.Board, 3)

	play(t, h, at(0, BetAction(20)), at(1, FoldAction()))

	require.True(t, h.IsComplete())
	out := h.Outcome()
	require.NotNil(t, out)
	assert.Equal(t, ReasonUncontested, out.Reason)
	assert.Equal(t, []int{0}, out.Winners)
	assert.Equal(t, 40, out.Won(0))
	assert.Equal(t, uint64(1), out.AwardID)
	assert.Equal(t, []int{110, 90, 100, 100}, h.Ledger.Stacks())
	assert.Equal(t, 0, h.Ledger.Total())
	assert.Len(t, h.Board, 3, "no further streets are dealt")
	assert.Equal(t, -1, h.ActiveSeat)

	assert.Empty(t, eventsOfType[HandsRevealed](h.Events()))
	ended := eventsOfType[HandEnded](h.Events())
	require.Len(t, ended, 1)
	assert.Equal(t, ReasonUncontested, ended[0].Reason)
	assert.Equal(t, []int{40, 0, 0, 0}, ended[0].Amounts)
}

func TestShowdownSingleWinner(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, []string{"As Ad", "Ks Kd", "2c 7h", "3c 8h"}, "Ah Kh 5c 9d Jc")
	h := newTestHand(t, []int{100, 100, 100, 100}, WithDeck(deck))

	play(t, h,
		at(0, BetAction(10)),
		at(1, CallAction()),
		at(2, CallAction()),
		at(3, CallAction()),
	)
	for _, street := range []Street{Flop, Turn, River} {
		require.Equal(t, street, h.Street)
		require.Equal(t, 0, h.ActiveSeat)
		checkAround(t, h)
	}

	require.True(t, h.IsComplete())
	assert.Equal(t, Showdown, h.Street)
	assert.Equal(t, poker.MustParseCards("Ah Kh 5c 9d Jc"), h.Board)

	out := h.Outcome()
	assert.Equal(t, ReasonShowdown, out.Reason)
	assert.False(t, out.RanOut)
	assert.Equal(t, []int{0}, out.Winners)
	assert.Equal(t, []int{130, 90, 90, 90}, h.Ledger.Stacks())

	require.Len(t, out.Results, 4)
	assert.Equal(t, poker.HandScore{
		Category: poker.ThreeOfAKind,
		Tiebreak: []poker.Rank{poker.Ace, poker.King, poker.Jack},
	}, out.Results[0].Score)
	assert.Equal(t, poker.ThreeOfAKind, out.Results[1].Score.Category)

	require.Len(t, out.Pots, 1)
	assert.Equal(t, 40, out.Pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2, 3}, out.Pots[0].Eligible)
	assert.Equal(t, []int{0}, out.Pots[0].Winners)

	for _, p := range h.Players {
		assert.True(t, p.Revealed, "seat %d shown at showdown", p.Seat)
	}
}

func TestShowdownSplitPotOddChips(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, []string{"Kh Qd", "Kc Qh", "Ks Qs", "Jd Jh"}, "2c 3d 4h 5s 6c")
	h := newTestHand(t, []int{100, 100, 100, 100}, WithDeck(deck))

	play(t, h,
		at(0, BetAction(5)),
		at(1, CallAction()),
		at(2, CallAction()),
		at(3, CallAction()),
		at(0, BetAction(1)),
		at(1, CallAction()),
		at(2, CallAction()),
		at(3, FoldAction()),
	)
	require.Equal(t, Turn, h.Street)
	checkAround(t, h)
	checkAround(t, h)

	require.True(t, h.IsComplete())
	out := h.Outcome()
	assert.Equal(t, []int{0, 1, 2}, out.Winners)
	assert.Equal(t, [NumSeats]int{9, 7, 7, 0}, out.Amounts, "odd chips go to the first winner in seat order")
	assert.Equal(t, []int{103, 101, 101, 95}, h.Ledger.Stacks())
	assert.Equal(t, 400, sum(h.Ledger.Stacks()))
}

func TestAllInRunOutWithSidePots(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, []string{"As Ad", "2c 7d", "Ks Kd", "Qs Qd"}, "Ah 3h 8c 9d Jc")
	h := newTestHand(t, []int{10, 10, 50, 100}, WithDeck(deck))

	play(t, h,
		at(0, AllInAction()),
		at(1, AllInAction()),
		at(2, AllInAction()),
		at(3, CallAction()),
	)

	require.True(t, h.IsComplete())
	assert.Equal(t, Showdown, h.Street)
	assert.Len(t, h.Board, 5)

	out := h.Outcome()
	assert.True(t, out.RanOut)
	require.Len(t, out.Pots, 2)
	assert.Equal(t, PotResult{
		Amount:   40,
		Eligible: []int{0, 1, 2, 3},
		Winners:  []int{0},
		Shares:   map[int]int{0: 40},
	}, out.Pots[0])
	assert.Equal(t, PotResult{
		Amount:   80,
		Eligible: []int{2, 3},
		Winners:  []int{2},
		Shares:   map[int]int{2: 80},
	}, out.Pots[1])
	assert.Equal(t, []int{40, 0, 80, 50}, h.Ledger.Stacks())

	// Hands are revealed before the board is run out.
	events := h.Events()
	revealAt, flopAt := -1, -1
	for i, e := range events {
		switch ev := e.(type) {
		case HandsRevealed:
			if revealAt < 0 {
				revealAt = i
			}
			assert.Len(t, ev.Hands, 4)
		case StreetAdvanced:
			if ev.Street == Flop {
				flopAt = i
			}
		}
	}
	require.GreaterOrEqual(t, revealAt, 0)
	assert.Less(t, revealAt, flopAt)
	assert.Empty(t, eventsOfType[SeatActed](events[revealAt:]), "no betting after the run-out starts")
}

func TestRunOutAfterFlopAllIn(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{100, 60, 0, 0})
	play(t, h, at(0, CheckAction()), at(1, CheckAction()))
	require.Equal(t, Flop, h.Street)

	play(t, h, at(0, BetAction(20)), at(1, AllInAction()), at(0, CallAction()))

	require.True(t, h.IsComplete())
	out := h.Outcome()
	assert.True(t, out.RanOut)
	assert.Len(t, h.Board, 5)
	assert.Equal(t, 160, sum(h.Ledger.Stacks()))
}

func TestSubmitActionRejections(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{100, 100, 100, 100})
	before := h.Snapshot()
	eventCount := len(h.Events())

	tests := []struct {
		name   string
		seat   int
		action Action
		want   error
	}{
		{"wrong seat", 1, CheckAction(), ErrNotYourTurn},
		{"out of range seat", 7, CheckAction(), ErrNotYourTurn},
		{"call with nothing to call", 0, CallAction(), ErrIllegalAction},
		{"raise with no bet", 0, RaiseAction(10), ErrIllegalAction},
		{"check with amount", 0, Action{Kind: Check, Amount: 5}, ErrIllegalAction},
		{"zero bet", 0, BetAction(0), ErrIllegalAction},
		{"bet above stack", 0, BetAction(500), ErrInsufficientChips},
		{"unknown kind", 0, Action{Kind: ActionKind(42)}, ErrIllegalAction},
	}
	for _, tt := range tests {
		err := h.SubmitAction(tt.seat, tt.action)
		assert.ErrorIs(t, err, tt.want, tt.name)
		assert.ErrorIs(t, err, ErrContractViolation, tt.name)
	}

	assert.Equal(t, before, h.Snapshot(), "rejected actions leave no trace")
	assert.Len(t, h.Events(), eventCount)
}

func TestSubmitActionAfterHandEnds(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{100, 100, 0, 0})
	play(t, h, at(0, BetAction(10)), at(1, FoldAction()))
	require.True(t, h.IsComplete())
	stacks := h.Ledger.Stacks()

	for seat := range NumSeats {
		err := h.SubmitAction(seat, FoldAction())
		assert.ErrorIs(t, err, ErrHandComplete)
		assert.ErrorIs(t, err, ErrActionRejected)
	}
	assert.Equal(t, stacks, h.Ledger.Stacks())
	assert.Len(t, eventsOfType[HandEnded](h.Events()), 1)
}

func TestSettleTwiceIsNoOp(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{100, 100, 0, 0})
	play(t, h, at(0, BetAction(10)), at(1, FoldAction()))
	require.True(t, h.IsComplete())
	stacks := h.Ledger.Stacks()
	award := h.Ledger.LastApplied()

	// A second resolution path firing for the same hand.
	require.NoError(t, h.finishUncontested())
	require.NoError(t, h.showdown(false))

	status, err := h.Ledger.Award(award, map[int]int{1: 0})
	require.NoError(t, err)
	assert.Equal(t, AwardAlreadyApplied, status)

	assert.Equal(t, stacks, h.Ledger.Stacks())
	assert.Equal(t, award, h.Ledger.LastApplied())
	assert.Len(t, eventsOfType[HandEnded](h.Events()), 1)
}

func TestDeckExhaustedAbortsAndRefunds(t *testing.T) {
	t.Parallel()

	deck := shortDeck(t, "As Ks Qs Js Ad Kd Qd Jd 2c 3c 4c")
	h := newTestHand(t, []int{100, 100, 100, 100}, WithDeck(deck))

	play(t, h,
		at(0, BetAction(10)),
		at(1, CallAction()),
		at(2, CallAction()),
		at(3, CallAction()),
		at(0, CheckAction()),
		at(1, CheckAction()),
		at(2, CheckAction()),
	)
	err := h.SubmitAction(3, CheckAction())
	require.ErrorIs(t, err, ErrResourceExhausted)
	assert.ErrorIs(t, err, poker.ErrDeckExhausted)

	require.True(t, h.IsComplete())
	out := h.Outcome()
	assert.Equal(t, ReasonAborted, out.Reason)
	assert.NotEmpty(t, out.Cause)
	assert.Equal(t, []int{100, 100, 100, 100}, h.Ledger.Stacks(), "contributions refunded")

	aborted := eventsOfType[HandAborted](h.Events())
	require.Len(t, aborted, 1)
	assert.Equal(t, []int{10, 10, 10, 10}, aborted[0].Refunds)
	assert.Empty(t, eventsOfType[HandEnded](h.Events()))

	assert.ErrorIs(t, h.SubmitAction(0, CheckAction()), ErrHandComplete)
}

func TestRandomPlayConservesChips(t *testing.T) {
	t.Parallel()

	for seed := range int64(300) {
		rng := randutil.New(seed)
		stacks := make([]int, NumSeats)
		for i := range stacks {
			if rng.IntN(5) > 0 {
				stacks[i] = rng.IntN(200)
			}
		}
		stacks[seed%NumSeats] = max(stacks[seed%NumSeats], 1)
		stacks[(seed+1)%NumSeats] = max(stacks[(seed+1)%NumSeats], 1)
		start := sum(stacks)

		h, err := NewHand(rng, stacks, WithMinBet(1+rng.IntN(3)))
		require.NoError(t, err, "seed %d", seed)

		for steps := 0; !h.IsComplete(); steps++ {
			require.Less(t, steps, 200, "seed %d: hand did not finish", seed)

			legal := h.LegalActions()
			require.NotEmpty(t, legal, "seed %d: active seat %d has no actions", seed, h.ActiveSeat)
			choice := legal[rng.IntN(len(legal))]
			a := Action{Kind: choice.Kind}
			if choice.Kind == Bet || choice.Kind == Raise {
				a.Amount = choice.Min + rng.IntN(choice.Max-choice.Min+1)
			}
			require.True(t, choice.Allows(a))

			err := h.SubmitAction(h.ActiveSeat, a)
			require.NoError(t, err, "seed %d: %s", seed, a)
			require.Equal(t, start, h.TotalChips(), "seed %d: chips changed after %s", seed, a)
		}

		assert.Equal(t, start, sum(h.Ledger.Stacks()), "seed %d", seed)
		assert.Zero(t, h.Ledger.Total(), "seed %d: pot not emptied", seed)
		assert.Len(t, eventsOfType[HandEnded](h.Events()), 1, "seed %d", seed)

		out := h.Outcome()
		assert.Equal(t, h.Ledger.Total()+sum(h.Ledger.Stacks()), start)
		won := 0
		for _, amount := range out.Amounts {
			won += amount
		}
		contributed := 0
		for seat := range NumSeats {
			contributed += h.Ledger.Contributed(seat)
		}
		assert.Equal(t, contributed, won, "seed %d: payout must equal contributions", seed)
	}
}

func TestIsRejectionError(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(ErrNotYourTurn, ErrActionRejected))
	assert.True(t, errors.Is(ErrIllegalAction, ErrContractViolation))
	assert.False(t, errors.Is(ErrResourceExhausted, ErrContractViolation))
	assert.False(t, errors.Is(ErrInsufficientChips, ErrActionRejected))
}
