package trace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wargame/game"
	"wargame/rules"
	"wargame/searcher"
)

func TestRecorderFileName(t *testing.T) {
	tests := []struct {
		params Params
		want   string
	}{
		{Params{MaxTime: 5, MaxTurns: 100, AlphaBeta: true}, "gameTrace-true-5-100.txt"},
		{Params{MaxTime: 2.5, MaxTurns: 30, AlphaBeta: false}, "gameTrace-false-2.5-30.txt"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NewRecorder(tt.params).FileName())
	}
}

func TestRecorderWritesTranscript(t *testing.T) {
	r := NewRecorder(Params{MaxTime: 5, MaxTurns: 100, AlphaBeta: true, GameType: "auto", Heuristic: 2})

	board := rules.NewBoard(rules.DefaultMaxTurns)
	r.RecordBoard(board)
	r.RecordAction(game.Attacker, 1, "move E2 -> D2")
	r.RecordSearch(
		searcher.Result{Score: 42, Depth: 4, Nodes: 1234, Elapsed: 900 * time.Millisecond},
		searcher.Summary{
			Evaluations:        1000,
			EvaluationsByDepth: map[int]int64{1: 100, 2: 900},
			AverageBranching:   7.5,
		})
	r.RecordOutcome(game.DefenderWins, 23)

	dir := t.TempDir()
	path, err := r.Write(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "gameTrace-true-5-100.txt"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	require.Contains(t, text, "max_time: 5")
	require.Contains(t, text, "max_turns: 100")
	require.Contains(t, text, "alpha-beta is on")
	require.Contains(t, text, "Player1 = AI, Player2 = AI")
	require.Contains(t, text, "Heuristic e2")
	require.Contains(t, text, "Initial Board Configuration")
	require.Contains(t, text, " 0   1   2   3   4", "The board grid should be embedded")
	require.Contains(t, text, "Attacker - turn #1: move E2 -> D2")
	require.Contains(t, text, "Heuristic score: 42")
	require.Contains(t, text, "Cumulative evals: 1000")
	require.Contains(t, text, "Cumulative evals by depth: 1:100 2:900")
	require.Contains(t, text, "Cumulative % evals by depth: 1:10.00 % 2:90.00 %")
	require.Contains(t, text, "Average branching factor: 7.50")
	require.Contains(t, text, "Defender wins in 23 turns")
}

func TestRecorderLabelsHumanMatches(t *testing.T) {
	r := NewRecorder(Params{MaxTime: 5, MaxTurns: 100, AlphaBeta: true, GameType: "manual"})
	r.RecordOutcome(game.AttackerWins, 9)

	path, err := r.Write(t.TempDir())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	require.Contains(t, text, "Player1 = H, Player2 = H")
	require.NotContains(t, text, "alpha-beta", "A human-only match has no search parameters")
	require.NotContains(t, text, "Heuristic e")
}
