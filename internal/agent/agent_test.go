package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// playHands drives an engine with the given agents and fails on any
// rejected action.
func playHands(t *testing.T, seed int64, hands int, agents [game.NumSeats]Agent) *game.Engine {
	t.Helper()
	ctx := context.Background()
	e := game.NewEngine(randutil.New(seed), game.EngineConfig{})

	stacks := []int{100, 100, 100, 100}
	for range hands {
		_, err := e.StartHand(stacks)
		require.NoError(t, err)

		for e.InProgress() {
			state, err := e.CurrentState()
			require.NoError(t, err)
			seat := state.ActiveSeat
			a, err := agents[seat].Decide(ctx, state.ForSeat(seat))
			require.NoError(t, err)
			require.NoError(t, e.SubmitAction(seat, a), "seat %d chose %s in %+v", seat, a, state.LegalActions)
		}

		stacks = e.Stacks()
		funded := 0
		for _, s := range stacks {
			if s > 0 {
				funded++
			}
		}
		if funded < 2 {
			stacks = []int{100, 100, 100, 100}
		}
	}
	return e
}

func TestStrategiesOnlyMakeLegalActions(t *testing.T) {
	t.Parallel()

	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rng := randutil.New(11)

			var agents [game.NumSeats]Agent
			for seat := range agents {
				a, err := New(name, rng, nil)
				require.NoError(t, err)
				agents[seat] = a
			}
			e := playHands(t, 5, 200, agents)
			assert.Equal(t, 200, e.HandCount())
		})
	}
}

func TestMixedTableOnlyMakesLegalActions(t *testing.T) {
	t.Parallel()

	rng := randutil.New(3)
	var agents [game.NumSeats]Agent
	for seat, name := range []string{StrategyRandom, StrategyAggressive, StrategyCallingStation, StrategyFold} {
		a, err := New(name, rng, nil)
		require.NoError(t, err)
		agents[seat] = a
	}
	playHands(t, 8, 300, agents)
}

func TestNewUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := New("shark", randutil.New(1), nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Contains(t, err.Error(), "callingstation")
}

func TestStrategiesSorted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"aggressive", "callingstation", "fold", "random"}, Strategies())
}

func view(street game.Street, pot, currentBet int, hole string, legal ...game.ValidAction) game.Snapshot {
	var cards []poker.Card
	if hole != "" {
		cards = poker.MustParseCards(hole)
	}
	return game.Snapshot{
		Street:       street,
		Pot:          pot,
		CurrentBet:   currentBet,
		ActiveSeat:   1,
		LegalActions: legal,
		Seats: []game.SeatState{
			{Seat: 0, Committed: currentBet},
			{Seat: 1, Stack: 100, HoleCards: cards},
		},
	}
}

func TestFallback(t *testing.T) {
	t.Parallel()

	free := view(game.Flop, 10, 0, "", game.ValidAction{Kind: game.Fold}, game.ValidAction{Kind: game.Check})
	assert.Equal(t, game.CheckAction(), Fallback(free))

	facing := view(game.Flop, 20, 10, "", game.ValidAction{Kind: game.Fold}, game.ValidAction{Kind: game.Call, Min: 10, Max: 10})
	assert.Equal(t, game.FoldAction(), Fallback(facing))
}

func TestCallingStation(t *testing.T) {
	t.Parallel()

	c := NewCallingStation(nil)
	call := game.ValidAction{Kind: game.Call, Min: 10, Max: 10}
	fold := game.ValidAction{Kind: game.Fold}

	a, err := c.Decide(context.Background(), view(game.Turn, 40, 10, "", fold, call))
	require.NoError(t, err)
	assert.Equal(t, game.CallAction(), a)

	// 10 into 30 is a small river bet
	a, err = c.Decide(context.Background(), view(game.River, 40, 10, "", fold, call))
	require.NoError(t, err)
	assert.Equal(t, game.CallAction(), a)

	// 50 into 10 is not
	big := game.ValidAction{Kind: game.Call, Min: 50, Max: 50}
	a, err = c.Decide(context.Background(), view(game.River, 60, 50, "", fold, big))
	require.NoError(t, err)
	assert.Equal(t, game.FoldAction(), a)

	allIn := game.ValidAction{Kind: game.AllIn, Min: 100, Max: 100}
	a, err = c.Decide(context.Background(), view(game.Flop, 300, 200, "", fold, allIn))
	require.NoError(t, err)
	assert.Equal(t, game.AllInAction(), a)
}

func TestAggressivePreflopCategories(t *testing.T) {
	t.Parallel()

	ag := NewAggressive(randutil.New(1), nil)
	legal := []game.ValidAction{
		{Kind: game.Fold},
		{Kind: game.Call, Min: 10, Max: 10},
		{Kind: game.Raise, Min: 20, Max: 100},
		{Kind: game.AllIn, Min: 100, Max: 100},
	}

	a, err := ag.Decide(context.Background(), view(game.Preflop, 10, 10, "As Ad", legal...))
	require.NoError(t, err)
	assert.Equal(t, game.AllInAction(), a)

	a, err = ag.Decide(context.Background(), view(game.Preflop, 10, 10, "7c 2d", legal...))
	require.NoError(t, err)
	assert.Equal(t, game.FoldAction(), a)
}

func TestRandomBetWithinBounds(t *testing.T) {
	t.Parallel()

	r := NewRandom(randutil.New(9), nil)
	bet := game.ValidAction{Kind: game.Bet, Min: 5, Max: 60}
	v := view(game.Flop, 0, 0, "", bet)

	for range 100 {
		a, err := r.Decide(context.Background(), v)
		require.NoError(t, err)
		assert.True(t, bet.Allows(a), "bet %d outside [5,60]", a.Amount)
	}
}

func TestScripted(t *testing.T) {
	t.Parallel()

	s := NewScripted(game.BetAction(10), game.FoldAction())
	assert.Equal(t, 2, s.Remaining())

	a, err := s.Decide(context.Background(), game.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, game.BetAction(10), a)

	a, err = s.Decide(context.Background(), game.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, game.FoldAction(), a)

	_, err = s.Decide(context.Background(), game.Snapshot{})
	assert.ErrorIs(t, err, ErrScriptExhausted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewScripted(game.CheckAction()).Decide(ctx, game.Snapshot{})
	assert.ErrorIs(t, err, context.Canceled)
}
