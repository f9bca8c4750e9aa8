package agent

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// Random makes uniform random legal actions.
type Random struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a new Random agent
func NewRandom(rng *rand.Rand, logger *log.Logger) *Random {
	return &Random{rng: rng, logger: orDiscard(logger)}
}

func (r *Random) Decide(_ context.Context, view game.Snapshot) (game.Action, error) {
	if len(view.LegalActions) == 0 {
		return Fallback(view), nil
	}

	v := view.LegalActions[r.rng.IntN(len(view.LegalActions))]

	// For bets and raises, pick a random total between min and max
	amount := v.Min
	if (v.Kind == game.Bet || v.Kind == game.Raise) && v.Max > v.Min {
		amount = v.Min + r.rng.IntN(v.Max-v.Min+1)
	}

	a := actionFor(v, amount)
	r.logger.Debug("Random action", "seat", view.ActiveSeat, "action", a)
	return a, nil
}
