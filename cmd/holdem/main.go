package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"holdem.hcl" help:"HCL config file (defaults apply when missing)" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error), overrides the config file"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run many hands across parallel tables and print statistics"`
	Hand     HandCmd          `cmd:"" help:"Play one hand and print its event log"`
	Eval     EvalCmd          `cmd:"" help:"Rank the best five-card hand from 5 to 7 cards"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Four-seat Texas Hold'em rule engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the config file and builds the root logger from it.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	return cfg, logger, nil
}
