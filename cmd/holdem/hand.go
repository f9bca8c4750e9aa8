package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/runner"
)

// HandCmd plays a single hand and prints its history.
type HandCmd struct {
	Seed       *int64 `short:"s" help:"Deterministic RNG seed (random when unset)"`
	Pretty     bool   `help:"Render suits as symbols"`
	HideCards  bool   `help:"Do not print hole cards at showdown"`
	HistoryOut string `help:"Also write the plain hand history to this file" type:"path"`
}

func (c *HandCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if cfg.Seed == 0 {
		_, cfg.Seed = randutil.NewFromTime()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	rng := randutil.New(cfg.Seed)
	var agents [game.NumSeats]agent.Agent
	for i, seat := range cfg.Seats {
		agents[i], err = agent.New(seat.Strategy, rng, logger)
		if err != nil {
			return fmt.Errorf("seat %s: %w", seat.Name, err)
		}
	}

	engine := game.NewEngine(rng, game.EngineConfig{
		Names:  cfg.Names(),
		MinBet: cfg.MinBet,
		Logger: logger,
	})
	engine.Subscribe(newEventPrinter(os.Stdout, game.FormattingOptions{
		ShowHoleCards: !c.HideCards,
		PrettyCards:   c.Pretty,
	}))

	fmt.Println(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Println()

	if _, err := engine.StartHand(cfg.Stacks()); err != nil {
		return err
	}
	r := runner.New(engine, runner.Config{
		Agents:  agents,
		Timeout: timeout,
		Logger:  logger,
	})
	if _, err := r.PlayHand(context.Background()); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(dimStyle.Render(fmt.Sprintf("stacks %v, seed %d", engine.Stacks(), cfg.Seed)))

	if c.HistoryOut != "" {
		if err := fileutil.WriteAtomic(c.HistoryOut, []byte(history(engine.Events())), 0o644); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
		logger.Info("Hand history written to file", "file", c.HistoryOut)
	}
	return nil
}

// history renders events as unstyled hand-history text.
func history(events []game.Event) string {
	formatter := game.NewEventFormatter(game.FormattingOptions{ShowHoleCards: true})
	var b strings.Builder
	for _, e := range events {
		if line := formatter.Format(e); line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
