package agent

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// Aggressive bets and shoves frequently, calls sometimes and rarely folds.
// Preflop it leans on the hole card category: premium hands always shove
// and trash folds to a bet.
type Aggressive struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewAggressive creates a new Aggressive agent
func NewAggressive(rng *rand.Rand, logger *log.Logger) *Aggressive {
	return &Aggressive{rng: rng, logger: orDiscard(logger)}
}

func (a *Aggressive) Decide(_ context.Context, view game.Snapshot) (game.Action, error) {
	seat := view.ActiveSeat
	_, canCheck := view.Legal(game.Check)

	if view.Street == game.Preflop {
		if st, ok := holeCards(view); ok {
			category := poker.CategorizeHoleCards(st.HoleCards[0], st.HoleCards[1])
			switch {
			case category == poker.CategoryPremium:
				a.logger.Debug("Shoving premium hand", "seat", seat, "cards", poker.FormatCards(st.HoleCards))
				return prefer(view, game.AllIn, game.Call, game.Check), nil
			case category == poker.CategoryTrash && !canCheck:
				return prefer(view, game.Fold), nil
			}
		}
	}

	agg, canAggress := aggression(view)

	if canCheck {
		// We can check, but we would rather bet
		if a.rng.Float64() < 0.85 {
			if a.rng.Float64() < 0.3 {
				return prefer(view, game.AllIn, game.Check), nil
			}
			if canAggress {
				size := agg.Min + (agg.Max-agg.Min)*3/4
				return actionFor(agg, size), nil
			}
		}
		return game.CheckAction(), nil
	}

	// Facing a bet
	roll := a.rng.Float64()
	if roll < 0.4 {
		if _, ok := view.Legal(game.AllIn); ok {
			return game.AllInAction(), nil
		}
		if canAggress {
			return actionFor(agg, agg.Max), nil
		}
	}
	if roll < 0.8 {
		return prefer(view, game.Call, game.AllIn), nil
	}
	return game.FoldAction(), nil
}
