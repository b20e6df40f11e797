// Package config owns the command-line surface: defaults, parsing and
// validation. Flags can also be supplied as WARGAME_-prefixed environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/namsral/flag"

	"wargame/game"
)

// Game types on the command-line surface. The name states which role the
// human plays; "manual" is human versus human, "auto" computer versus
// computer.
const (
	Manual       = "manual"
	AttackerGame = "attacker"
	DefenderGame = "defender"
	Auto         = "auto"
)

// EnvPrefix namespaces the environment-variable fallback for every flag.
const EnvPrefix = "WARGAME"

type Config struct {
	GameType  string
	MaxDepth  int
	MaxTime   float64 // seconds per computer move
	AlphaBeta bool
	Heuristic int
	MaxTurns  int

	Goroutines int

	Broker       string // relay URL for remote play
	BrokerListen string // serve the embedded relay at this address

	Trace      bool
	TraceDir   string
	LogLevel   string
	Experiment string
}

// Parse reads the flags from args (not including the program name).
func Parse(name string, args []string) (Config, error) {
	var c Config
	fs := flag.NewFlagSetWithEnvPrefix(name, EnvPrefix, flag.ContinueOnError)

	fs.StringVar(&c.GameType, "game_type", Manual, "manual | attacker | defender | auto")
	fs.IntVar(&c.MaxDepth, "max_depth", 4, "maximum search depth in plies")
	fs.Float64Var(&c.MaxTime, "max_time", 5.0, "seconds per computer move")
	fs.BoolVar(&c.AlphaBeta, "alpha_beta", true, "alpha-beta pruning (false for plain minimax)")
	fs.IntVar(&c.Heuristic, "heuristic", 0, "heuristic id for computer play")
	fs.IntVar(&c.MaxTurns, "max_turns", 100, "ply limit, reaching it is a defender win")
	fs.IntVar(&c.Goroutines, "goroutines", 1, "goroutines searching root moves in parallel")
	fs.StringVar(&c.Broker, "broker", "", "game broker URL for remote play")
	fs.StringVar(&c.BrokerListen, "broker_listen", "", "serve the embedded game broker at this address")
	fs.BoolVar(&c.Trace, "trace", true, "write the game trace file")
	fs.StringVar(&c.TraceDir, "trace_dir", ".", "directory for trace and experiment files")
	fs.StringVar(&c.LogLevel, "log_level", "info", "zerolog level")
	fs.StringVar(&c.Experiment, "experiment", "", "run the named experiment instead of a match")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.GameType {
	case Manual, AttackerGame, DefenderGame, Auto:
	default:
		return fmt.Errorf("unknown game_type %q (want manual, attacker, defender or auto)", c.GameType)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("goroutines must be positive, got %d", c.Goroutines)
	}
	if !c.ComputerPlays() && c.Experiment == "" {
		return nil
	}

	// Search parameters only matter once a computer is involved, but then
	// they must be usable before any search starts.
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("max_time must be positive, got %v", c.MaxTime)
	}
	if _, err := game.HeuristicFor(c.Heuristic); err != nil {
		return err
	}
	return nil
}

// ComputerPlays reports whether any role is computer-controlled.
func (c Config) ComputerPlays() bool {
	return c.GameType != Manual
}

// HumanRoles lists the locally human-controlled roles for the game type.
func (c Config) HumanRoles() []game.Role {
	switch c.GameType {
	case Manual:
		return []game.Role{game.Attacker, game.Defender}
	case AttackerGame:
		return []game.Role{game.Attacker}
	case DefenderGame:
		return []game.Role{game.Defender}
	default:
		return nil
	}
}

// ComputerRoles lists the computer-controlled roles for the game type.
func (c Config) ComputerRoles() []game.Role {
	switch c.GameType {
	case Auto:
		return []game.Role{game.Attacker, game.Defender}
	case AttackerGame:
		return []game.Role{game.Defender}
	case DefenderGame:
		return []game.Role{game.Attacker}
	default:
		return nil
	}
}

// MoveBudget is the per-move wall-clock budget.
func (c Config) MoveBudget() time.Duration {
	return time.Duration(c.MaxTime * float64(time.Second))
}
