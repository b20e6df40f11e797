// Package trace renders match transcripts and experiment result files.
// The game trace format and file naming follow the established transcript
// layout: a parameter header, the board before every action, one line per
// action with search diagnostics for computer moves, and the winner.
package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wargame/game"
	"wargame/searcher"
)

// Params captures the match configuration echoed in the trace header.
type Params struct {
	MaxTime   float64 // seconds
	MaxTurns  int
	AlphaBeta bool
	GameType  string // manual | attacker | defender | auto
	Heuristic int
}

// Recorder accumulates the transcript of one match.
type Recorder struct {
	params  Params
	lines   []string
	outcome string
}

func NewRecorder(params Params) *Recorder {
	return &Recorder{params: params}
}

// RecordBoard appends the current grid, rendered without the turn header.
func (r *Recorder) RecordBoard(state game.State) {
	if g, ok := state.(interface{ Grid() string }); ok {
		r.lines = append(r.lines, g.Grid())
		return
	}
	r.lines = append(r.lines, state.String())
}

// RecordAction appends one performed action, e.g.
// "Attacker - turn #3: attack C4 -> C3".
func (r *Recorder) RecordAction(mover game.Role, turn int, description string) {
	r.lines = append(r.lines, fmt.Sprintf("%v - turn #%d: %s", mover, turn, description))
}

// RecordSearch appends the diagnostics of a computer move: the score of
// this search plus the cumulative counters across the match so far.
func (r *Recorder) RecordSearch(result searcher.Result, summary searcher.Summary) {
	byDepth := "Cumulative evals by depth: "
	percent := "Cumulative % evals by depth: "
	depths := make([]int, 0, len(summary.EvaluationsByDepth))
	for depth := range summary.EvaluationsByDepth {
		depths = append(depths, depth)
	}
	sort.Ints(depths)
	for _, depth := range depths {
		count := summary.EvaluationsByDepth[depth]
		byDepth += fmt.Sprintf("%d:%d ", depth, count)
		percent += fmt.Sprintf("%d:%.2f %% ", depth, float64(count)/float64(summary.Evaluations)*100)
	}

	r.lines = append(r.lines,
		fmt.Sprintf("Heuristic score: %d", result.Score),
		fmt.Sprintf("Cumulative evals: %d", summary.Evaluations),
		byDepth,
		percent,
		fmt.Sprintf("Time for this action : %.1fs", result.Elapsed.Seconds()),
		fmt.Sprintf("Average branching factor: %.2f", summary.AverageBranching),
	)
}

// RecordOutcome seals the transcript with the final line.
func (r *Recorder) RecordOutcome(outcome game.Outcome, plies int) {
	r.outcome = fmt.Sprintf("%v in %d turns", outcome, plies)
}

// FileName derives the trace file name from the parameters.
func (r *Recorder) FileName() string {
	return fmt.Sprintf("gameTrace-%t-%v-%d.txt", r.params.AlphaBeta, r.params.MaxTime, r.params.MaxTurns)
}

// Write renders the trace file into dir and returns its path.
func (r *Recorder) Write(dir string) (string, error) {
	var sb strings.Builder
	sb.WriteString("The game parameters\n\n")
	sb.WriteString(r.header())
	sb.WriteString("\n\n")
	sb.WriteString("Initial Board Configuration\n\n")
	for _, line := range r.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString("\n\n")
	sb.WriteString(r.outcome)

	path := filepath.Join(dir, r.FileName())
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write the game trace: %w", err)
	}
	return path, nil
}

func (r *Recorder) header() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "max_time: %v\n", r.params.MaxTime)
	fmt.Fprintf(&sb, "max_turns: %d\n", r.params.MaxTurns)

	players, computer := playerLabels(r.params.GameType)
	if computer {
		if r.params.AlphaBeta {
			sb.WriteString("\nalpha-beta is on")
		} else {
			sb.WriteString("\nalpha-beta is off")
		}
	}
	fmt.Fprintf(&sb, "\ngame_type: %s\n", players)
	if computer {
		fmt.Fprintf(&sb, "\nHeuristic e%d", r.params.Heuristic)
	}
	return sb.String()
}

func playerLabels(gameType string) (players string, computer bool) {
	switch gameType {
	case "manual":
		return "Player1 = H, Player2 = H", false
	case "attacker":
		return "Player1 = H, Player2 = AI", true
	case "defender":
		return "Player1 = AI, Player2 = H", true
	default:
		return "Player1 = AI, Player2 = AI", true
	}
}
