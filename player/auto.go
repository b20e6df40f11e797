package player

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"wargame/game"
	"wargame/searcher"
)

// Automated plays moves found by the search engine. An unknown heuristic
// id fails at construction, before any game starts.
type Automated struct {
	role    game.Role
	search  *searcher.Minimax
	metrics searcher.Collector
	last    searcher.Result
	moved   bool
}

func NewAutomated(role game.Role, heuristicID, goroutines int, options ...searcher.Option) (*Automated, error) {
	evaluate, err := game.HeuristicFor(heuristicID)
	if err != nil {
		return nil, fmt.Errorf("failed to create the %v player: %w", role, err)
	}

	metrics := searcher.NewCollector()
	options = append([]searcher.Option{
		searcher.WithEvaluationFn(evaluate),
		searcher.WithMetrics(metrics),
	}, options...)
	return &Automated{
		role:    role,
		search:  searcher.NewMinimax(goroutines, options...),
		metrics: metrics,
	}, nil
}

func (a *Automated) Role() game.Role {
	return a.role
}

func (a *Automated) NextMove(ctx context.Context, state game.State) (game.Move, error) {
	result, err := a.search.FindBestMove(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to find a move for %v: %w", a.role, err)
	}

	log.Debug().Msgf("%v searched to depth %d in %v: %v scores %d",
		a.role, result.Depth, result.Elapsed, result.Move, result.Score)
	a.last = result
	a.moved = true
	return result.Move, nil
}

// LastResult returns the diagnostics of the most recent search.
func (a *Automated) LastResult() (searcher.Result, bool) {
	return a.last, a.moved
}

// Metrics returns the cumulative diagnostics across all searches so far.
func (a *Automated) Metrics() searcher.Summary {
	return a.metrics.Summary()
}
