package agent

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// largeBetRatio is the bet-to-pot ratio above which a calling station gives
// up on the river.
const largeBetRatio = 0.8

// CallingStation checks and calls down, folding only to a large river bet.
type CallingStation struct {
	logger *log.Logger
}

// NewCallingStation creates a new CallingStation agent
func NewCallingStation(logger *log.Logger) *CallingStation {
	return &CallingStation{logger: orDiscard(logger)}
}

func (c *CallingStation) Decide(_ context.Context, view game.Snapshot) (game.Action, error) {
	seat := view.ActiveSeat
	toCall := view.ToCall(seat)

	// Fold the river to a bet that is large relative to the pot before it
	if view.Street == game.River && toCall > 0 {
		before := max(view.Pot-toCall, 1)
		if ratio := float64(toCall) / float64(before); ratio > largeBetRatio {
			c.logger.Debug("Folding river to large bet", "seat", seat, "to_call", toCall, "ratio", ratio)
			return prefer(view, game.Fold), nil
		}
	}

	// Calling with the whole stack shows up as all-in only
	return prefer(view, game.Check, game.Call, game.AllIn), nil
}
