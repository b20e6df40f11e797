package searcher

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"wargame/game"
)

// WinScore is the saturating score of a decided game: +WinScore for an
// attacker win, -WinScore for a defender win. Every heuristic must stay
// strictly inside this magnitude at any depth.
const WinScore = 2_000_000_000

// infinity seeds alpha/beta windows and best-value trackers. It sits
// strictly outside the score range so the first child always improves on
// the seed and a saturating child never ties it.
const infinity = WinScore + 1

// DefaultMaxDepth bounds the iterative deepening when no option overrides it.
const DefaultMaxDepth = 4

// timeMargin is held back from the time budget so the engine answers
// before the caller's own deadline.
const timeMargin = 49 * time.Millisecond

// ErrNoLegalMoves is returned when a search is requested on a state whose
// side to move has no legal move.
var ErrNoLegalMoves = errors.New("no legal moves")

// Result is the outcome of a single search call.
type Result struct {
	Move    game.Move
	Score   int
	Depth   int // deepest fully completed iteration
	Nodes   int // states visited below the root
	Elapsed time.Duration
}

type Option func(m *Minimax)

// Minimax finds the best move for the side to move by fixed-depth
// minimax, optionally with alpha-beta pruning. The attacker maximizes the
// evaluation, the defender minimizes it.
type Minimax struct {
	goroutines int
	maxDepth   int
	duration   time.Duration
	alphaBeta  bool
	evaluate   game.Evaluate
	metrics    Collector
}

func WithMaxDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *Minimax) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithAlphaBeta(enabled bool) Option {
	return func(m *Minimax) {
		m.alphaBeta = enabled
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics(metrics Collector) Option {
	return func(m *Minimax) {
		if metrics != nil {
			m.metrics = metrics
		}
	}
}

func NewMinimax(goroutines int, options ...Option) *Minimax {
	m := &Minimax{ // Default values
		goroutines: goroutines,
		maxDepth:   DefaultMaxDepth,
		alphaBeta:  true,
		metrics:    NewNopCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines < 1 {
		panic("Must have at least one search goroutine")
	}
	if m.evaluate == nil {
		panic("Must specify an evaluation function")
	}
	return m
}

// run carries the mutable bookkeeping of one FindBestMove call.
type run struct {
	depth int // iteration depth, keys the evaluation counts
	nodes atomic.Int64
}

// FindBestMove searches the position by iterative deepening up to the
// configured depth and returns the best move of the deepest iteration that
// completed inside the time budget. The first iteration ignores the budget
// so a legal move is always produced.
func (m *Minimax) FindBestMove(ctx context.Context, state game.State) (Result, error) {
	if state.Outcome() != game.Ongoing {
		return Result{}, fmt.Errorf("failed to search a decided position (%v): %w", state.Outcome(), ErrNoLegalMoves)
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return Result{}, fmt.Errorf("failed to search for %v: %w", state.ToMove(), ErrNoLegalMoves)
	}

	start := time.Now()
	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration-timeMargin)
		defer cancel()
	}

	var best Result
	var nodes int64
	for depth := 1; depth <= m.maxDepth; depth++ {
		iterCtx := ctx
		if depth == 1 {
			iterCtx = context.Background()
		}

		r := &run{depth: depth}
		move, score, err := m.searchRoot(iterCtx, state, moves, depth, r)
		nodes += r.nodes.Load()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				log.Debug().Msgf("search for %v stopped at depth %d, keeping depth %d", state.ToMove(), depth, best.Depth)
				break
			}
			return Result{}, err
		}
		best = Result{Move: move, Score: score, Depth: depth}
	}

	best.Nodes = int(nodes)
	best.Elapsed = time.Since(start)
	m.metrics.AddSearch(best.Elapsed)
	return best, nil
}

func (m *Minimax) searchRoot(ctx context.Context, state game.State, moves []game.Move, depth int, r *run) (game.Move, int, error) {
	if m.goroutines > 1 && len(moves) > 1 {
		return m.searchRootParallel(ctx, state, moves, depth, r)
	}
	return m.searchRootSequential(ctx, state, moves, depth, r)
}

func (m *Minimax) searchRootSequential(ctx context.Context, state game.State, moves []game.Move, depth int, r *run) (game.Move, int, error) {
	maximizing := state.ToMove() == game.Attacker

	var bestMove game.Move
	bestScore := -infinity
	if !maximizing {
		bestScore = infinity
	}
	alpha, beta := -infinity, infinity

	visited := 0
	for _, move := range moves {
		child, err := state.Play(move)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to expand root move %v: %w", move, err)
		}
		visited++

		score, err := m.search(ctx, child, depth-1, alpha, beta, r)
		if err != nil {
			return nil, 0, err
		}

		// Strict comparisons keep the first best move in enumeration order.
		if maximizing {
			if score > bestScore {
				bestScore, bestMove = score, move
			}
			if m.alphaBeta && bestScore > alpha {
				alpha = bestScore
			}
		} else {
			if score < bestScore {
				bestScore, bestMove = score, move
			}
			if m.alphaBeta && bestScore < beta {
				beta = bestScore
			}
		}
		if m.alphaBeta && beta <= alpha {
			break
		}
	}
	m.metrics.AddBranching(visited)
	return bestMove, bestScore, nil
}

// searchRootParallel searches each root child with a full window, so every
// child yields its true fixed-depth value and the pick below is identical
// to the sequential result.
func (m *Minimax) searchRootParallel(ctx context.Context, state game.State, moves []game.Move, depth int, r *run) (game.Move, int, error) {
	scores := make([]int, len(moves))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.goroutines)
	for i, move := range moves {
		i, move := i, move
		group.Go(func() error {
			child, err := state.Play(move)
			if err != nil {
				return fmt.Errorf("failed to expand root move %v: %w", move, err)
			}
			score, err := m.search(groupCtx, child, depth-1, -infinity, infinity, r)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}
	m.metrics.AddBranching(len(moves))

	maximizing := state.ToMove() == game.Attacker
	best := 0
	for i := 1; i < len(scores); i++ {
		if maximizing && scores[i] > scores[best] || !maximizing && scores[i] < scores[best] {
			best = i
		}
	}
	return moves[best], scores[best], nil
}

func (m *Minimax) search(ctx context.Context, state game.State, depth int, alpha, beta int, r *run) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	r.nodes.Add(1)

	if depth == 0 || state.Outcome() != game.Ongoing {
		m.metrics.AddEvaluation(r.depth)
		return m.score(state), nil
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return 0, fmt.Errorf("state %q is not terminal: %w", state, ErrNoLegalMoves)
	}

	maximizing := state.ToMove() == game.Attacker
	value := -infinity
	if !maximizing {
		value = infinity
	}

	visited := 0
	for _, move := range moves {
		child, err := state.Play(move)
		if err != nil {
			return 0, fmt.Errorf("failed to expand move %v: %w", move, err)
		}
		visited++

		score, err := m.search(ctx, child, depth-1, alpha, beta, r)
		if err != nil {
			return 0, err
		}

		if maximizing {
			if score > value {
				value = score
			}
			if m.alphaBeta && value > alpha {
				alpha = value
			}
		} else {
			if score < value {
				value = score
			}
			if m.alphaBeta && value < beta {
				beta = value
			}
		}
		if m.alphaBeta && beta <= alpha {
			break
		}
	}
	m.metrics.AddBranching(visited)
	return value, nil
}

// score rates a frontier state: decisive outcomes saturate, a draw is 0,
// anything still in progress gets the heuristic.
func (m *Minimax) score(state game.State) int {
	switch state.Outcome() {
	case game.AttackerWins:
		return WinScore
	case game.DefenderWins:
		return -WinScore
	case game.Draw:
		return 0
	default:
		return m.evaluate(state)
	}
}
