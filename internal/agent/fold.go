package agent

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// Fold always folds, checking when that is free.
type Fold struct {
	logger *log.Logger
}

// NewFold creates a new Fold agent
func NewFold(logger *log.Logger) *Fold {
	return &Fold{logger: orDiscard(logger)}
}

func (f *Fold) Decide(_ context.Context, view game.Snapshot) (game.Action, error) {
	return Fallback(view), nil
}
