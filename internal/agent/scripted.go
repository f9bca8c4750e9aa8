package agent

import (
	"context"
	"errors"
	"sync"

	"github.com/lox/holdem-engine/internal/game"
)

var ErrScriptExhausted = errors.New("script exhausted")

// Scripted replays a fixed list of actions, one per decision.
type Scripted struct {
	mu      sync.Mutex
	actions []game.Action
	next    int
}

// NewScripted creates an agent that returns actions in order.
func NewScripted(actions ...game.Action) *Scripted {
	return &Scripted{actions: actions}
}

func (s *Scripted) Decide(ctx context.Context, _ game.Snapshot) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.actions) {
		return game.Action{}, ErrScriptExhausted
	}
	a := s.actions[s.next]
	s.next++
	return a, nil
}

// Remaining returns how many scripted actions have not been used.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions) - s.next
}
