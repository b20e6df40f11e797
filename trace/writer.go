package trace

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig identifies one engine configuration under test.
type AgentConfig struct {
	ID         int
	Heuristic  int
	MaxDepth   int
	AlphaBeta  bool
	Goroutines int
	Duration   time.Duration
}

// GameRecord is the result of one experiment game.
type GameRecord struct {
	ID       int
	Agent1   int // attacker, AgentConfig.ID
	Agent2   int // defender, AgentConfig.ID
	Winner   string
	Plies    int
	Started  time.Time
	Duration time.Duration
}

// MoveRecord is the search diagnostics of one computer move.
type MoveRecord struct {
	Game    int // GameRecord.ID
	Ply     int
	Role    string
	Score   int
	Depth   int
	Nodes   int
	Elapsed time.Duration
}

// Writer stores experiment results as CSV files named after the
// experiment, in a timestamped directory so reruns never clobber each
// other.
type Writer struct {
	dir        string
	experiment string
}

func NewWriter(baseDir, experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join(baseDir, experiment, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create the experiment directory: %w", err)
	}
	return &Writer{dir: dir, experiment: experiment}, nil
}

// Dir returns the directory the result files land in.
func (w *Writer) Dir() string {
	return w.dir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.Heuristic),
			strconv.Itoa(c.MaxDepth),
			strconv.FormatBool(c.AlphaBeta),
			strconv.Itoa(c.Goroutines),
			c.Duration.String(),
		})
	}
	header := []string{"id", "heuristic", "max_depth", "alpha_beta", "goroutines", "duration"}
	return w.writeFile("configs", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Agent1),
			strconv.Itoa(r.Agent2),
			r.Winner,
			strconv.Itoa(r.Plies),
			r.Started.Format(time.RFC3339),
			r.Duration.String(),
		})
	}
	header := []string{"id", "agent1", "agent2", "winner", "plies", "started", "duration"}
	return w.writeFile("games", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Ply),
			r.Role,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Depth),
			strconv.Itoa(r.Nodes),
			r.Elapsed.String(),
		})
	}
	header := []string{"game", "ply", "role", "score", "depth", "nodes", "elapsed"}
	return w.writeFile("moves", header, rows)
}

func (w *Writer) writeFile(kind string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, fmt.Sprintf("%s-%s.csv", w.experiment, kind))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create the %s file: %w", kind, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write the %s header: %w", kind, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write a %s row: %w", kind, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
