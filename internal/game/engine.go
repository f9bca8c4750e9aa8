package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/gameid"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// EngineConfig configures an Engine. The zero value is usable.
type EngineConfig struct {
	Names  []string
	MinBet int
	Logger *log.Logger

	// Decks, when set, supplies the deck for each hand (numbered from 1)
	// instead of shuffling one from the engine's rng.
	Decks func(handNumber int) *poker.Deck
}

// Engine is the session boundary: it starts hands, accepts actions for the
// active seat and publishes events. Stacks and award transaction ids carry
// over from one hand to the next. An Engine is not safe for concurrent use.
type Engine struct {
	cfg       EngineConfig
	rng       *rand.Rand
	ids       *gameid.Generator
	bus       *SimpleEventBus
	logger    *log.Logger
	hand      *Hand
	stacks    []int
	handCount int
	lastAward uint64
	chipTotal int
}

// NewEngine creates an engine whose shuffles and hand ids draw from rng.
func NewEngine(rng *rand.Rand, cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		cfg:    cfg,
		rng:    rng,
		ids:    gameid.NewGenerator(randutil.Reader(rng)),
		bus:    NewEventBus(),
		logger: logger.WithPrefix("engine"),
	}
}

// Subscribe registers sub for every event of every later hand.
func (e *Engine) Subscribe(sub EventSubscriber) {
	e.bus.Subscribe(sub)
}

// Unsubscribe removes sub.
func (e *Engine) Unsubscribe(sub EventSubscriber) {
	e.bus.Unsubscribe(sub)
}

// StartHand begins a hand with one stack per seat (zero sits the seat out)
// and returns its id. It is rejected while a hand is still in progress.
func (e *Engine) StartHand(stacks []int) (string, error) {
	if e.InProgress() {
		return "", rejectf(ErrHandInProgress, "hand %s has not finished", e.hand.ID)
	}

	number := e.handCount + 1
	id := e.ids.Generate()
	opts := []HandOption{
		WithHandID(id),
		WithHandNumber(number),
		WithNames(e.cfg.Names),
		WithMinBet(e.cfg.MinBet),
		WithLastAwardID(e.lastAward),
		WithEventBus(e.bus),
		WithLogger(e.logger),
	}
	if e.cfg.Decks != nil {
		if deck := e.cfg.Decks(number); deck != nil {
			opts = append(opts, WithDeck(deck))
		}
	}

	h, err := NewHand(e.rng, stacks, opts...)
	if err != nil {
		e.logger.Warn("Hand not started", "error", err)
		return "", err
	}

	e.hand = h
	e.handCount = number
	e.chipTotal = h.TotalChips()
	e.logger.Debug("Hand started", "hand", id, "number", number)
	if h.IsComplete() {
		if err := e.finishHand(); err != nil {
			return id, err
		}
	}
	return id, nil
}

// NextHand starts a hand with the stacks left by the previous one.
func (e *Engine) NextHand() (string, error) {
	if e.stacks == nil {
		return "", rejectf(ErrNoHand, "no previous hand to continue from")
	}
	return e.StartHand(e.Stacks())
}

// SubmitAction applies an action for seat in the current hand. Rejected
// actions leave the hand untouched and wrap ErrActionRejected.
func (e *Engine) SubmitAction(seat int, a Action) error {
	if e.hand == nil {
		return rejectf(ErrNoHand, "submit %s for seat %d", a, seat)
	}

	err := e.hand.SubmitAction(seat, a)
	if errors.Is(err, ErrActionRejected) || errors.Is(err, ErrInsufficientChips) {
		e.logger.Warn("Action rejected", "hand", e.hand.ID, "seat", seat, "action", a, "error", err)
		return err
	}
	if e.hand.IsComplete() {
		if ferr := e.finishHand(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}

// finishHand carries the ledger's state over to the next hand.
func (e *Engine) finishHand() error {
	e.stacks = e.hand.Ledger.Stacks()
	e.lastAward = e.hand.Ledger.LastApplied()

	total := 0
	for _, s := range e.stacks {
		total += s
	}
	if total != e.chipTotal {
		e.logger.Error("Chip conservation violated", "hand", e.hand.ID, "expected", e.chipTotal, "actual", total)
		return fmt.Errorf("%w: hand %s started with %d, ended with %d", ErrChipsNotConserved, e.hand.ID, e.chipTotal, total)
	}
	return nil
}

// InProgress reports whether a hand is waiting for actions.
func (e *Engine) InProgress() bool {
	return e.hand != nil && !e.hand.IsComplete()
}

// CurrentState returns a snapshot of the current (or last finished) hand.
func (e *Engine) CurrentState() (Snapshot, error) {
	if e.hand == nil {
		return Snapshot{}, rejectf(ErrNoHand, "no state to report")
	}
	return e.hand.Snapshot(), nil
}

// Events returns the current hand's events in order.
func (e *Engine) Events() []Event {
	if e.hand == nil {
		return nil
	}
	return e.hand.Events()
}

// Replay re-delivers the current hand's events to sub.
func (e *Engine) Replay(sub EventSubscriber) {
	if e.hand == nil {
		return
	}
	e.hand.events.Replay(sub)
}

// Outcome returns the result of the current hand, or nil if it is still live.
func (e *Engine) Outcome() *Outcome {
	if e.hand == nil {
		return nil
	}
	return e.hand.Outcome()
}

// Stacks returns the stacks carried into the next hand. Nil until a hand
// has finished.
func (e *Engine) Stacks() []int {
	return slices.Clone(e.stacks)
}

// HandCount returns how many hands have been started.
func (e *Engine) HandCount() int {
	return e.handCount
}

// LastAwardID returns the most recent award transaction id.
func (e *Engine) LastAwardID() uint64 {
	if e.hand != nil {
		return e.hand.Ledger.LastApplied()
	}
	return e.lastAward
}
