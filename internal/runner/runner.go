// Package runner plays hands on an engine by asking each seat's agent for a
// decision, bounding every decision with a timeout from an injected clock.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/game"
)

var (
	ErrDecisionTimeout = errors.New("decision timed out")
	ErrNoAgent         = errors.New("no agent for seat")
)

// Config configures a Runner.
type Config struct {
	Agents  [game.NumSeats]agent.Agent
	Timeout time.Duration // per decision, zero waits forever
	Clock   quartz.Clock  // defaults to the real clock
	Logger  *log.Logger
}

// Stats counts what happened across every hand a Runner has played.
type Stats struct {
	Hands      int
	Decisions  int
	Timeouts   int
	Rejections int
	Fallbacks  int
	Aborted    int
}

// Runner drives one engine. It is not safe for concurrent use.
type Runner struct {
	engine *game.Engine
	cfg    Config
	clock  quartz.Clock
	logger *log.Logger
	stats  Stats
}

type decision struct {
	action game.Action
	err    error
}

// New creates a runner for engine.
func New(engine *game.Engine, cfg Config) *Runner {
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		engine: engine,
		cfg:    cfg,
		clock:  clock,
		logger: logger.WithPrefix("runner"),
	}
}

// Stats returns the counters so far.
func (r *Runner) Stats() Stats {
	return r.stats
}

// PlayHand asks agents for actions until the engine's current hand is over
// and returns its outcome. The hand must already be started. A seat whose
// agent times out, fails or picks a rejected action checks if it can and
// folds otherwise.
func (r *Runner) PlayHand(ctx context.Context) (*game.Outcome, error) {
	if _, err := r.engine.CurrentState(); err != nil {
		return nil, err
	}

	for r.engine.InProgress() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state, err := r.engine.CurrentState()
		if err != nil {
			return nil, err
		}
		seat := state.ActiveSeat
		view := state.ForSeat(seat)

		a, err := r.decide(ctx, seat, view)
		r.stats.Decisions++
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			r.logger.Warn("Decision failed, using fallback", "hand", state.HandID, "seat", seat, "error", err)
			a = agent.Fallback(view)
			r.stats.Fallbacks++
		}

		if err := r.submit(state.HandID, seat, a, view); err != nil {
			return nil, err
		}
	}

	r.stats.Hands++
	out := r.engine.Outcome()
	if out != nil && out.Reason == game.ReasonAborted {
		r.stats.Aborted++
	}
	return out, nil
}

// submit applies a, replacing it with the fallback if the engine rejects it.
func (r *Runner) submit(handID string, seat int, a game.Action, view game.Snapshot) error {
	err := r.engine.SubmitAction(seat, a)
	if errors.Is(err, game.ErrActionRejected) || errors.Is(err, game.ErrInsufficientChips) {
		r.stats.Rejections++
		r.stats.Fallbacks++
		fallback := agent.Fallback(view)
		r.logger.Warn("Action rejected, using fallback", "hand", handID, "seat", seat, "action", a, "fallback", fallback, "error", err)
		err = r.engine.SubmitAction(seat, fallback)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, game.ErrResourceExhausted):
		// The engine aborted and refunded the hand; that is its outcome.
		r.logger.Warn("Hand aborted", "hand", handID, "error", err)
		return nil
	default:
		return fmt.Errorf("seat %d %s: %w", seat, a, err)
	}
}

// decide asks seat's agent for an action, giving up after the timeout.
func (r *Runner) decide(ctx context.Context, seat int, view game.Snapshot) (game.Action, error) {
	ag := r.cfg.Agents[seat]
	if ag == nil {
		return game.Action{}, fmt.Errorf("%w %d", ErrNoAgent, seat)
	}
	if r.cfg.Timeout <= 0 {
		return ag.Decide(ctx, view)
	}

	decideCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Arm the timer before the agent starts so a mock clock can be advanced
	// as soon as the agent is seen running.
	timeoutFired := make(chan struct{})
	timer := r.clock.AfterFunc(r.cfg.Timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	result := make(chan decision, 1)
	go func() {
		a, err := ag.Decide(decideCtx, view)
		result <- decision{action: a, err: err}
	}()

	select {
	case d := <-result:
		return d.action, d.err
	case <-timeoutFired:
		r.stats.Timeouts++
		return game.Action{}, fmt.Errorf("%w: seat %d after %s", ErrDecisionTimeout, seat, r.cfg.Timeout)
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}
}
