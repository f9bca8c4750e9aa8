// Package simulator plays many hands on independent tables in parallel and
// aggregates what happened to each seat.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/runner"
	"github.com/lox/holdem-engine/internal/statistics"
)

var ErrInvalidConfig = errors.New("invalid simulator config")

// Seat describes who sits in one seat and what they buy in for.
type Seat struct {
	Name     string
	Strategy string
	Stack    int
}

// Config holds configuration for running simulations
type Config struct {
	Hands           int // per table
	Tables          int
	Seed            int64
	Seats           [game.NumSeats]Seat
	MinBet          int
	DecisionTimeout time.Duration // per decision, zero disables
	HandTimeout     time.Duration // per hand, zero disables
	Clock           quartz.Clock
	Logger          *log.Logger
}

// Validate checks the config can run.
func (c Config) Validate() error {
	if c.Hands <= 0 {
		return fmt.Errorf("%w: hands must be positive, got %d", ErrInvalidConfig, c.Hands)
	}
	if c.Tables <= 0 {
		return fmt.Errorf("%w: tables must be positive, got %d", ErrInvalidConfig, c.Tables)
	}
	funded := 0
	for i, s := range c.Seats {
		if s.Stack < 0 {
			return fmt.Errorf("%w: seat %d has negative stack %d", ErrInvalidConfig, i, s.Stack)
		}
		if s.Stack > 0 {
			funded++
		}
		if _, err := agent.New(s.Strategy, nil, nil); err != nil {
			return fmt.Errorf("%w: seat %d: %w", ErrInvalidConfig, i, err)
		}
	}
	if funded < 2 {
		return fmt.Errorf("%w: need at least two funded seats, got %d", ErrInvalidConfig, funded)
	}
	return nil
}

// Stats aggregates every table's results.
type Stats struct {
	Tables      int
	Hands       int
	Showdowns   int
	Uncontested int
	Aborted     int
	RunOuts     int
	Rebuys      int
	Runner      runner.Stats

	// Results has one entry per funded seat per hand.
	Results statistics.Statistics
	Elapsed time.Duration
}

// Merge adds other's counts into s.
func (s *Stats) Merge(other *Stats) {
	s.Tables += other.Tables
	s.Hands += other.Hands
	s.Showdowns += other.Showdowns
	s.Uncontested += other.Uncontested
	s.Aborted += other.Aborted
	s.RunOuts += other.RunOuts
	s.Rebuys += other.Rebuys
	s.Runner.Hands += other.Runner.Hands
	s.Runner.Decisions += other.Runner.Decisions
	s.Runner.Timeouts += other.Runner.Timeouts
	s.Runner.Rejections += other.Runner.Rejections
	s.Runner.Fallbacks += other.Runner.Fallbacks
	s.Runner.Aborted += other.Runner.Aborted
	s.Results.Merge(&other.Results)
}

// Simulator runs poker hand simulations
type Simulator struct {
	config Config
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, clock: clock, logger: logger.WithPrefix("simulator")}
}

// Run plays every table to completion and returns the combined results.
// Each table draws from its own stream of the seed, so results do not
// depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*Stats, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	start := s.clock.Now()

	results := make([]*Stats, s.config.Tables)
	g, ctx := errgroup.WithContext(ctx)
	for table := range s.config.Tables {
		g.Go(func() error {
			stats, err := s.runTable(ctx, table)
			if err != nil {
				return fmt.Errorf("table %d: %w", table, err)
			}
			results[table] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &Stats{Results: statistics.Statistics{BigPotThreshold: s.bigPot()}}
	for _, r := range results {
		total.Merge(r)
	}
	total.Elapsed = s.clock.Since(start)

	if err := total.Results.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.logger.Info("Simulation complete", "tables", total.Tables, "hands", total.Hands, "elapsed", total.Elapsed)
	return total, nil
}

func (s *Simulator) runTable(ctx context.Context, table int) (*Stats, error) {
	logger := s.logger.With("table", table)
	rng := randutil.Derive(s.config.Seed, table)

	var names []string
	var agents [game.NumSeats]agent.Agent
	for seat, st := range s.config.Seats {
		names = append(names, st.Name)
		agentRng := rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
		a, err := agent.New(st.Strategy, agentRng, logger)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
		agents[seat] = a
	}

	engine := game.NewEngine(rng, game.EngineConfig{
		Names:  names,
		MinBet: s.config.MinBet,
		Logger: logger,
	})
	r := runner.New(engine, runner.Config{
		Agents:  agents,
		Timeout: s.config.DecisionTimeout,
		Clock:   s.clock,
		Logger:  logger,
	})

	stats := &Stats{Tables: 1, Results: statistics.Statistics{BigPotThreshold: s.bigPot()}}
	stacks := s.startingStacks()
	for hand := range s.config.Hands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if funded(stacks) < 2 {
			logger.Debug("Rebuying all seats", "hand", hand+1, "stacks", stacks)
			stacks = s.startingStacks()
			stats.Rebuys++
		}

		after, err := s.playHand(ctx, engine, r, stacks)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand+1, err)
		}
		if err := s.record(stats, engine, stacks, after); err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand+1, err)
		}
		stacks = after
	}

	stats.Runner = r.Stats()
	return stats, nil
}

// playHand runs one hand, bounded by the hand timeout to catch hangs.
func (s *Simulator) playHand(ctx context.Context, engine *game.Engine, r *runner.Runner, stacks []int) ([]int, error) {
	if s.config.HandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.HandTimeout)
		defer cancel()
	}

	if _, err := engine.StartHand(stacks); err != nil {
		return nil, err
	}
	if _, err := r.PlayHand(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("hang detected after %v: %w", s.config.HandTimeout, err)
		}
		return nil, err
	}
	return engine.Stacks(), nil
}

// record checks conservation and adds one result per funded seat.
func (s *Simulator) record(stats *Stats, engine *game.Engine, before, after []int) error {
	if sum(before) != sum(after) {
		return fmt.Errorf("%w: stacks %v became %v", game.ErrChipsNotConserved, before, after)
	}

	out := engine.Outcome()
	state, err := engine.CurrentState()
	if err != nil {
		return err
	}

	stats.Hands++
	switch out.Reason {
	case game.ReasonShowdown:
		stats.Showdowns++
	case game.ReasonUncontested:
		stats.Uncontested++
	case game.ReasonAborted:
		stats.Aborted++
	}
	if out.RanOut {
		stats.RunOuts++
	}

	pot := sum(out.Amounts[:])
	for seat, stack := range before {
		if stack == 0 {
			continue
		}
		stats.Results.Add(statistics.HandResult{
			Net:            after[seat] - stack,
			Seat:           seat,
			WentToShowdown: out.Reason == game.ReasonShowdown,
			FinalPotSize:   pot,
			StreetReached:  state.Street,
		})
	}
	return nil
}

func (s *Simulator) startingStacks() []int {
	stacks := make([]int, game.NumSeats)
	for i, st := range s.config.Seats {
		stacks[i] = st.Stack
	}
	return stacks
}

// bigPot counts a pot as big once it holds half the chips in play.
func (s *Simulator) bigPot() int {
	return sum(s.startingStacks()) / 2
}

func funded(stacks []int) int {
	n := 0
	for _, s := range stacks {
		if s > 0 {
			n++
		}
	}
	return n
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
