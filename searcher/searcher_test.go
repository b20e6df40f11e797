package searcher

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wargame/game"
)

/**
Tests the minimax engine on the synthetic tree game:
- fixed-depth values and move picks per iteration depth
- alpha-beta returns the same move and score as plain minimax
  (trees x depths x evaluation fns)
- repeated searches are deterministic
- decisive positions saturate at any depth, dominating every heuristic
- root ties keep the first move in enumeration order
- time budget: deepest completed iteration wins, depth 1 always completes
- terminal root -> ErrNoLegalMoves
- root-parallel search matches the sequential result
- constructor validation and option defaults
*/

func TestFindBestMoveDepths(t *testing.T) {
	for _, alphaBeta := range []bool{true, false} {
		for _, tc := range []struct {
			depth     int
			wantMove  step
			wantScore int
		}{
			{1, "d2", 8},
			{2, "d3", 6},
			{3, "d3", 6},
		} {
			t.Run(fmt.Sprintf("depth %d alphaBeta %t", tc.depth, alphaBeta), func(t *testing.T) {
				m := NewMinimax(1,
					WithEvaluationFn(treeEvaluate),
					WithMaxDepth(tc.depth),
					WithAlphaBeta(alphaBeta))

				got, err := m.FindBestMove(context.Background(), treeState{n: alternatingTree()})

				require.NoError(t, err)
				require.Equal(t, game.Move(tc.wantMove), got.Move, "Search should pick the minimax move for the depth")
				require.Equal(t, tc.wantScore, got.Score, "Search should back up the minimax value for the depth")
				require.Equal(t, tc.depth, got.Depth, "Every iteration should complete without a budget")
			})
		}
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	trees := []struct {
		name   string
		root   *node
		depths []int
	}{
		{"pruning tree", pruningTree(), []int{1, 2}},
		{"alternating tree", alternatingTree(), []int{1, 2, 3}},
		{"win in one tree", winInOneTree(), []int{1, 2, 3, 4, 5}},
	}
	evaluations := map[string]game.Evaluate{
		"frontier value": treeEvaluate,
		"scaled":         func(s game.State) int { return -2 * s.(treeState).n.value },
	}

	for _, tree := range trees {
		for name, evaluate := range evaluations {
			for _, depth := range tree.depths {
				t.Run(fmt.Sprintf("%s depth %d %s", tree.name, depth, name), func(t *testing.T) {
					state := treeState{n: tree.root}
					plain := NewMinimax(1, WithEvaluationFn(evaluate), WithMaxDepth(depth), WithAlphaBeta(false))
					pruned := NewMinimax(1, WithEvaluationFn(evaluate), WithMaxDepth(depth))

					want, err := plain.FindBestMove(context.Background(), state)
					require.NoError(t, err)
					got, err := pruned.FindBestMove(context.Background(), state)
					require.NoError(t, err)

					require.Equal(t, want.Move, got.Move, "Pruned search should pick the same move as plain minimax")
					require.Equal(t, want.Score, got.Score, "Pruned search should back up the same score as plain minimax")
				})
			}
		}
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	state := treeState{n: pruningTree()}
	m := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(2))

	first, err := m.FindBestMove(context.Background(), state)
	require.NoError(t, err)
	require.Equal(t, game.Move(step("a")), first.Move, "Depth-2 minimum of the first branch should win")
	require.Equal(t, 3, first.Score)

	for i := 0; i < 4; i++ {
		again, err := m.FindBestMove(context.Background(), state)
		require.NoError(t, err)
		require.Equal(t, first.Move, again.Move, "Repeated searches should pick the same move")
		require.Equal(t, first.Score, again.Score, "Repeated searches should back up the same score")
		require.Equal(t, first.Nodes, again.Nodes, "Repeated searches should visit the same nodes")
	}
}

func TestWinningMoveSaturates(t *testing.T) {
	t.Run("attacker to move", func(t *testing.T) {
		for _, alphaBeta := range []bool{true, false} {
			for depth := 1; depth <= 5; depth++ {
				m := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(depth), WithAlphaBeta(alphaBeta))

				got, err := m.FindBestMove(context.Background(), treeState{n: winInOneTree()})

				require.NoError(t, err)
				require.Equal(t, game.Move(step("win")), got.Move, "Winning move should beat every heuristic alternative")
				require.Equal(t, WinScore, got.Score, "Decisive outcome should score the saturating value")
			}
		}
	})

	t.Run("defender to move", func(t *testing.T) {
		root := branch("root", game.Defender, 0,
			edge{"lose", won(game.AttackerWins)},
			edge{"quiet", branch("meh", game.Attacker, -50,
				edge{"reply", branch("deep", game.Defender, -7,
					edge{"last", won(game.AttackerWins)})},
			)},
			edge{"win", won(game.DefenderWins)},
		)
		for _, alphaBeta := range []bool{true, false} {
			for depth := 1; depth <= 5; depth++ {
				m := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(depth), WithAlphaBeta(alphaBeta))

				got, err := m.FindBestMove(context.Background(), treeState{n: root})

				require.NoError(t, err)
				require.Equal(t, game.Move(step("win")), got.Move, "Winning move should beat every heuristic alternative")
				require.Equal(t, -WinScore, got.Score, "Defender win should score the negative saturating value")
			}
		}
	})
}

func TestRootTieKeepsFirstMove(t *testing.T) {
	t.Run("maximizer", func(t *testing.T) {
		root := branch("root", game.Attacker, 0,
			edge{"x", leaf(5)}, edge{"y", leaf(5)}, edge{"z", leaf(1)})
		for _, alphaBeta := range []bool{true, false} {
			m := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(1), WithAlphaBeta(alphaBeta))

			got, err := m.FindBestMove(context.Background(), treeState{n: root})

			require.NoError(t, err)
			require.Equal(t, game.Move(step("x")), got.Move, "Tie should keep the first move in enumeration order")
			require.Equal(t, 5, got.Score)
		}
	})

	t.Run("minimizer", func(t *testing.T) {
		root := branch("root", game.Defender, 0,
			edge{"p", leaf(9)}, edge{"q", leaf(-4)}, edge{"r", leaf(-4)})
		for _, alphaBeta := range []bool{true, false} {
			m := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(1), WithAlphaBeta(alphaBeta))

			got, err := m.FindBestMove(context.Background(), treeState{n: root})

			require.NoError(t, err)
			require.Equal(t, game.Move(step("q")), got.Move, "Tie should keep the first move in enumeration order")
			require.Equal(t, -4, got.Score)
		}
	})
}

func TestTimeBudget(t *testing.T) {
	slowEvaluate := func(s game.State) int {
		time.Sleep(time.Millisecond)
		return treeEvaluate(s)
	}
	state := treeState{n: wideTree(8, 2, game.Attacker)}

	t.Run("deadline mid-iteration keeps the completed depth", func(t *testing.T) {
		m := NewMinimax(1, WithEvaluationFn(slowEvaluate), WithMaxDepth(2), WithDuration(60*time.Millisecond))

		got, err := m.FindBestMove(context.Background(), state)

		require.NoError(t, err, "A timeout is not an error")
		require.Equal(t, 1, got.Depth, "Depth 2 cannot finish inside the budget")
		require.Equal(t, game.Move(step("m7")), got.Move, "Depth-1 maximum should be the answer")
	})

	t.Run("budget below the safety margin still yields depth 1", func(t *testing.T) {
		m := NewMinimax(1, WithEvaluationFn(slowEvaluate), WithMaxDepth(2), WithDuration(time.Millisecond))

		got, err := m.FindBestMove(context.Background(), state)

		require.NoError(t, err)
		require.Equal(t, 1, got.Depth)
		require.Equal(t, game.Move(step("m7")), got.Move)
	})

	t.Run("canceled caller context still yields depth 1", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		m := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(2))

		got, err := m.FindBestMove(ctx, state)

		require.NoError(t, err)
		require.Equal(t, 1, got.Depth)
		require.Equal(t, game.Move(step("m7")), got.Move)
	})

	t.Run("no budget completes every iteration", func(t *testing.T) {
		m := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(2))

		got, err := m.FindBestMove(context.Background(), state)

		require.NoError(t, err)
		require.Equal(t, 2, got.Depth)
	})
}

func TestSearchOnTerminalState(t *testing.T) {
	m := NewMinimax(1, WithEvaluationFn(treeEvaluate))

	_, err := m.FindBestMove(context.Background(), treeState{n: won(game.AttackerWins)})

	require.ErrorIs(t, err, ErrNoLegalMoves, "Searching a decided position is a caller bug")
}

func TestParallelMatchesSequential(t *testing.T) {
	trees := []struct {
		name  string
		root  *node
		depth int
	}{
		{"pruning tree", pruningTree(), 2},
		{"alternating tree", alternatingTree(), 3},
		{"win in one tree", winInOneTree(), 3},
	}
	for _, tree := range trees {
		t.Run(tree.name, func(t *testing.T) {
			state := treeState{n: tree.root}
			sequential := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(tree.depth))
			parallel := NewMinimax(4, WithEvaluationFn(treeEvaluate), WithMaxDepth(tree.depth))

			want, err := sequential.FindBestMove(context.Background(), state)
			require.NoError(t, err)

			for i := 0; i < 3; i++ {
				got, err := parallel.FindBestMove(context.Background(), state)
				require.NoError(t, err)
				require.Equal(t, want.Move, got.Move, "Root-parallel search should pick the sequential move")
				require.Equal(t, want.Score, got.Score, "Root-parallel search should back up the sequential score")
			}
		})
	}
}

func TestSearchReportsNodes(t *testing.T) {
	state := treeState{n: pruningTree()}

	pruned := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(2))
	got, err := pruned.FindBestMove(context.Background(), state)
	require.NoError(t, err)
	require.Equal(t, 13, got.Nodes, "Depth 1 visits 3 nodes, depth 2 visits 10 after pruning")
	require.Positive(t, got.Elapsed)

	plain := NewMinimax(1, WithEvaluationFn(treeEvaluate), WithMaxDepth(2), WithAlphaBeta(false))
	got, err = plain.FindBestMove(context.Background(), state)
	require.NoError(t, err)
	require.Equal(t, 15, got.Nodes, "Plain minimax visits every node of both iterations")
}

func TestNewMinimaxValidation(t *testing.T) {
	require.Panics(t, func() { NewMinimax(0, WithEvaluationFn(treeEvaluate)) },
		"Zero goroutines should panic")
	require.Panics(t, func() { NewMinimax(1) },
		"Missing evaluation function should panic")

	m := NewMinimax(1,
		WithEvaluationFn(treeEvaluate),
		WithMaxDepth(0),
		WithDuration(-time.Second),
		WithEvaluationFn(nil),
		WithMetrics(nil))
	require.Equal(t, DefaultMaxDepth, m.maxDepth, "Non-positive depth should keep the default")
	require.Equal(t, time.Duration(0), m.duration, "Non-positive duration should keep the default")
	require.NotNil(t, m.evaluate, "Nil evaluation fn should not override an earlier one")
	require.Equal(t, NewNopCollector(), m.metrics, "Nil collector should keep the default")
	require.True(t, m.alphaBeta, "Pruning should default on")
}
