// Package config loads the HCL configuration used by the holdem CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/simulator"
)

const (
	DefaultLogLevel        = "info"
	DefaultHands           = 1000
	DefaultTables          = 1
	DefaultMinBet          = 1
	DefaultDecisionTimeout = "2s"
	DefaultStack           = 200
)

var ErrInvalid = errors.New("invalid config")

// Config represents the complete configuration
type Config struct {
	LogLevel        string       `hcl:"log_level,optional"`
	Seed            int64        `hcl:"seed,optional"`
	Hands           int          `hcl:"hands,optional"`
	Tables          int          `hcl:"tables,optional"`
	MinBet          int          `hcl:"min_bet,optional"`
	DecisionTimeout string       `hcl:"decision_timeout,optional"`
	Seats           []SeatConfig `hcl:"seat,block"`
}

// SeatConfig is one seat at the table, in seat order.
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Stack    *int   `hcl:"stack,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// StackOrDefault returns the configured stack, or DefaultStack when unset.
func (s SeatConfig) StackOrDefault() int {
	if s.Stack == nil {
		return DefaultStack
	}
	return *s.Stack
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func defaultSeats() []SeatConfig {
	return []SeatConfig{
		{Name: "alice", Strategy: agent.StrategyRandom},
		{Name: "bob", Strategy: agent.StrategyCallingStation},
		{Name: "carol", Strategy: agent.StrategyAggressive},
		{Name: "dave", Strategy: agent.StrategyCallingStation},
	}
}

// Load reads configuration from an HCL file, returning the defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	return decode(file, diags)
}

// Parse reads configuration from HCL source; filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	return decode(file, diags)
}

func decode(file *hcl.File, diags hcl.Diagnostics) (*Config, error) {
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in values missing from the file
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Hands == 0 {
		c.Hands = DefaultHands
	}
	if c.Tables == 0 {
		c.Tables = DefaultTables
	}
	if c.MinBet == 0 {
		c.MinBet = DefaultMinBet
	}
	if c.DecisionTimeout == "" {
		c.DecisionTimeout = DefaultDecisionTimeout
	}
	if len(c.Seats) == 0 {
		c.Seats = defaultSeats()
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = agent.StrategyCallingStation
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q: %w", ErrInvalid, c.LogLevel, err)
	}
	if c.Hands <= 0 {
		return fmt.Errorf("%w: hands must be positive, got %d", ErrInvalid, c.Hands)
	}
	if c.Tables <= 0 {
		return fmt.Errorf("%w: tables must be positive, got %d", ErrInvalid, c.Tables)
	}
	if c.MinBet <= 0 {
		return fmt.Errorf("%w: min_bet must be positive, got %d", ErrInvalid, c.MinBet)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	if len(c.Seats) != game.NumSeats {
		return fmt.Errorf("%w: exactly %d seat blocks required, got %d", ErrInvalid, game.NumSeats, len(c.Seats))
	}

	strategies := agent.Strategies()
	funded := 0
	var names []string
	for _, seat := range c.Seats {
		if slices.Contains(names, seat.Name) {
			return fmt.Errorf("%w: seat %q declared twice", ErrInvalid, seat.Name)
		}
		names = append(names, seat.Name)

		if !slices.Contains(strategies, seat.Strategy) {
			return fmt.Errorf("%w: seat %s: invalid strategy %q", ErrInvalid, seat.Name, seat.Strategy)
		}
		stack := seat.StackOrDefault()
		if stack < 0 {
			return fmt.Errorf("%w: seat %s: stack must not be negative", ErrInvalid, seat.Name)
		}
		if stack > 0 {
			funded++
		}
	}
	if funded < 2 {
		return fmt.Errorf("%w: at least two seats need chips, got %d", ErrInvalid, funded)
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

// Timeout returns the parsed decision timeout.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: decision_timeout %q: %w", ErrInvalid, c.DecisionTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: decision_timeout must not be negative", ErrInvalid)
	}
	return d, nil
}

// Names returns the seat names in seat order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		names[i] = s.Name
	}
	return names
}

// Stacks returns the starting stacks in seat order.
func (c *Config) Stacks() []int {
	stacks := make([]int, len(c.Seats))
	for i, s := range c.Seats {
		stacks[i] = s.StackOrDefault()
	}
	return stacks
}

// Simulator converts a validated config into simulator settings.
func (c *Config) Simulator(logger *log.Logger) (simulator.Config, error) {
	if err := c.Validate(); err != nil {
		return simulator.Config{}, err
	}
	timeout, err := c.Timeout()
	if err != nil {
		return simulator.Config{}, err
	}

	sc := simulator.Config{
		Hands:           c.Hands,
		Tables:          c.Tables,
		Seed:            c.Seed,
		MinBet:          c.MinBet,
		DecisionTimeout: timeout,
		Logger:          logger,
	}
	for i, s := range c.Seats {
		sc.Seats[i] = simulator.Seat{Name: s.Name, Strategy: s.Strategy, Stack: s.StackOrDefault()}
	}
	return sc, nil
}
