// Package experiments runs scripted self-play matchups between engine
// configurations and stores the results as CSV files for analysis.
package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"wargame/engine"
	"wargame/game"
	"wargame/player"
	"wargame/rules"
	"wargame/searcher"
	"wargame/trace"
)

const (
	// NumGames is played per matchup.
	NumGames = 10
	// TimeBudget bounds each move so a full experiment stays tractable.
	TimeBudget = 2 * time.Second
	// MaxTurns keeps experiment games short of the standard ply limit.
	MaxTurns = 60
)

// Names lists the known experiments in the order they are documented.
func Names() []string {
	return []string{"pruning-speedup", "heuristics"}
}

// Run executes the named experiment and writes its results under baseDir.
func Run(name, baseDir string) error {
	switch name {
	case "pruning-speedup":
		return runPruningSpeedup(baseDir)
	case "heuristics":
		return runHeuristicRoundRobin(baseDir)
	default:
		return fmt.Errorf("unknown experiment %q (known: %v)", name, Names())
	}
}

// runPruningSpeedup pits alpha-beta against plain minimax at the same
// depth and heuristic: equal playing strength, so the move records isolate
// the pruning speedup.
func runPruningSpeedup(baseDir string) error {
	pruned := trace.AgentConfig{ID: 1, Heuristic: 0, MaxDepth: 4, AlphaBeta: true, Goroutines: 1, Duration: TimeBudget}
	plain := trace.AgentConfig{ID: 2, Heuristic: 0, MaxDepth: 4, AlphaBeta: false, Goroutines: 1, Duration: TimeBudget}

	matchups := [][2]trace.AgentConfig{
		{pruned, plain},
		{plain, pruned},
	}
	return runExperiment("pruning-speedup", baseDir, []trace.AgentConfig{pruned, plain}, matchups)
}

// runHeuristicRoundRobin plays every heuristic against every other in both
// seats.
func runHeuristicRoundRobin(baseDir string) error {
	var configs []trace.AgentConfig
	for i, id := range game.HeuristicIDs() {
		configs = append(configs, trace.AgentConfig{
			ID: i + 1, Heuristic: id, MaxDepth: 3, AlphaBeta: true, Goroutines: 1, Duration: TimeBudget,
		})
	}

	var matchups [][2]trace.AgentConfig
	for _, first := range configs {
		for _, second := range configs {
			if first.ID == second.ID {
				continue
			}
			matchups = append(matchups, [2]trace.AgentConfig{first, second})
		}
	}
	return runExperiment("heuristics", baseDir, configs, matchups)
}

func runExperiment(name, baseDir string, configs []trace.AgentConfig, matchups [][2]trace.AgentConfig) error {
	log.Info().Msgf("starting %s experiment...", name)

	count := 0
	var gameRecords []trace.GameRecord
	var moveRecords []trace.MoveRecord
	for mi, matchup := range matchups {
		attacker, defender := matchup[0], matchup[1]
		log.Info().Msgf("starting matchup %d of %d: agent %d attacks agent %d",
			mi+1, len(matchups), attacker.ID, defender.ID)

		for i := 0; i < NumGames; i++ {
			count++
			gameRecord, gameMoves, err := playGame(count, attacker, defender, MaxTurns)
			if err != nil {
				return fmt.Errorf("failed matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, gameRecord)
			moveRecords = append(moveRecords, gameMoves...)
			log.Info().Msgf("completed matchup %d game %d of %d: %s in %d plies",
				mi+1, i+1, NumGames, gameRecord.Winner, gameRecord.Plies)
		}
	}

	log.Info().Msgf("completed %s experiment: %d games", name, count)

	writer, err := trace.NewWriter(baseDir, name)
	if err != nil {
		return err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Msgf("stored %s results in %s", name, writer.Dir())
	return nil
}

// playGame runs one match between two automated players and collects the
// per-move search diagnostics.
func playGame(id int, attackerCfg, defenderCfg trace.AgentConfig, maxTurns int) (trace.GameRecord, []trace.MoveRecord, error) {
	attacker, err := newAgent(game.Attacker, attackerCfg)
	if err != nil {
		return trace.GameRecord{}, nil, err
	}
	defender, err := newAgent(game.Defender, defenderCfg)
	if err != nil {
		return trace.GameRecord{}, nil, err
	}
	agents := map[game.Role]*player.Automated{game.Attacker: attacker, game.Defender: defender}

	var moves []trace.MoveRecord
	observer := func(ev engine.Event) {
		result, ok := agents[ev.Mover].LastResult()
		if !ok {
			return
		}
		moves = append(moves, trace.MoveRecord{
			Game:    id,
			Ply:     ev.Turn,
			Role:    ev.Mover.String(),
			Score:   result.Score,
			Depth:   result.Depth,
			Nodes:   result.Nodes,
			Elapsed: result.Elapsed,
		})
	}

	match, err := engine.NewLocal(rules.NewBoard(maxTurns), attacker, defender, engine.WithObserver(observer))
	if err != nil {
		return trace.GameRecord{}, nil, err
	}

	started := time.Now()
	outcome, err := match.Run(context.Background())
	if err != nil {
		return trace.GameRecord{}, nil, err
	}

	record := trace.GameRecord{
		ID:       id,
		Agent1:   attackerCfg.ID,
		Agent2:   defenderCfg.ID,
		Winner:   outcome.String(),
		Plies:    match.State().Plies(),
		Started:  started,
		Duration: time.Since(started),
	}
	if winner, ok := outcome.Winner(); ok {
		record.Winner = winner.String()
	}
	return record, moves, nil
}

func newAgent(role game.Role, cfg trace.AgentConfig) (*player.Automated, error) {
	return player.NewAutomated(role, cfg.Heuristic, cfg.Goroutines,
		searcher.WithMaxDepth(cfg.MaxDepth),
		searcher.WithAlphaBeta(cfg.AlphaBeta),
		searcher.WithDuration(cfg.Duration),
	)
}
