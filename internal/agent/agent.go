// Package agent contains the decision makers that sit in a seat and choose
// actions. Agents only ever see the seat's own view of the hand and only act
// through the engine's SubmitAction boundary.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// Agent chooses the next action for the active seat in view.
type Agent interface {
	Decide(ctx context.Context, view game.Snapshot) (game.Action, error)
}

// Func adapts an ordinary function to Agent.
type Func func(ctx context.Context, view game.Snapshot) (game.Action, error)

func (f Func) Decide(ctx context.Context, view game.Snapshot) (game.Action, error) {
	return f(ctx, view)
}

// Strategy names understood by New.
const (
	StrategyRandom         = "random"
	StrategyCallingStation = "callingstation"
	StrategyAggressive     = "aggressive"
	StrategyFold           = "fold"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategies returns the names accepted by New, sorted.
func Strategies() []string {
	names := []string{StrategyRandom, StrategyCallingStation, StrategyAggressive, StrategyFold}
	slices.Sort(names)
	return names
}

// New builds the agent for a strategy name. Agents that randomise draw from
// rng; a nil logger discards output.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (Agent, error) {
	logger = orDiscard(logger).WithPrefix(strategy)

	switch strategy {
	case StrategyRandom:
		return NewRandom(rng, logger), nil
	case StrategyCallingStation:
		return NewCallingStation(logger), nil
	case StrategyAggressive:
		return NewAggressive(rng, logger), nil
	case StrategyFold:
		return NewFold(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownStrategy, strategy, Strategies())
	}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// Fallback is the action taken for a seat that cannot decide: check when
// free, otherwise fold.
func Fallback(view game.Snapshot) game.Action {
	if _, ok := view.Legal(game.Check); ok {
		return game.CheckAction()
	}
	return game.FoldAction()
}

// prefer returns the first legal action among kinds, sized at its minimum,
// or Fallback when none is legal.
func prefer(view game.Snapshot, kinds ...game.ActionKind) game.Action {
	for _, k := range kinds {
		if v, ok := view.Legal(k); ok {
			return actionFor(v, v.Min)
		}
	}
	return Fallback(view)
}

// actionFor turns a legal action into a concrete one; amount only matters
// for bets and raises.
func actionFor(v game.ValidAction, amount int) game.Action {
	switch v.Kind {
	case game.Bet:
		return game.BetAction(amount)
	case game.Raise:
		return game.RaiseAction(amount)
	default:
		return game.Action{Kind: v.Kind}
	}
}

// aggression returns the legal bet or raise, whichever applies this street.
func aggression(view game.Snapshot) (game.ValidAction, bool) {
	if v, ok := view.Legal(game.Bet); ok {
		return v, true
	}
	return view.Legal(game.Raise)
}

func holeCards(view game.Snapshot) (game.SeatState, bool) {
	st, ok := view.Seat(view.ActiveSeat)
	if !ok || len(st.HoleCards) != 2 {
		return st, false
	}
	return st, true
}
