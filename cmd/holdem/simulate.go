package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/simulator"
)

// SimulateCmd runs the simulator with the configured seats.
type SimulateCmd struct {
	Hands       *int          `short:"n" help:"Hands per table"`
	Tables      *int          `short:"t" help:"Tables to run in parallel"`
	Seed        *int64        `short:"s" help:"Deterministic RNG seed (random when unset)"`
	HandTimeout time.Duration `default:"30s" help:"Abort if a single hand takes longer than this"`
	StatsOut    string        `help:"Also write a JSON report to this file" type:"path"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}
	if c.Hands != nil {
		cfg.Hands = *c.Hands
	}
	if c.Tables != nil {
		cfg.Tables = *c.Tables
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if cfg.Seed == 0 {
		_, cfg.Seed = randutil.NewFromTime()
		logger.Info("Using random seed", "seed", cfg.Seed)
	}

	sc, err := cfg.Simulator(logger)
	if err != nil {
		return err
	}
	sc.HandTimeout = c.HandTimeout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation",
		"hands", sc.Hands,
		"tables", sc.Tables,
		"seed", sc.Seed,
		"decision_timeout", sc.DecisionTimeout)

	stats, err := simulator.New(sc).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Hold'em simulation ♦ ♣ "))
	simulator.PrintSummary(os.Stdout, stats, sc.Seats)
	fmt.Println(dimStyle.Render(fmt.Sprintf("\nseed %d", sc.Seed)))

	if c.StatsOut != "" {
		if err := fileutil.WriteJSON(c.StatsOut, simulator.NewReport(sc, stats)); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		logger.Info("Stats written to file", "file", c.StatsOut)
	}
	return nil
}
