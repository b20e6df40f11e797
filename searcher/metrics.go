package searcher

import (
	"sync"
	"time"
)

// Summary is a snapshot of the diagnostics accumulated across searches.
type Summary struct {
	Searches           int
	Elapsed            time.Duration
	Evaluations        int64
	EvaluationsByDepth map[int]int64 // iteration depth -> leaf evaluations
	AverageBranching   float64       // children visited per expanded node
}

// EvalRate returns leaf evaluations per second over the accumulated search
// time, or 0 before the first search completes.
func (s Summary) EvalRate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Evaluations) / s.Elapsed.Seconds()
}

// Collector receives search diagnostics. Implementations must be safe for
// concurrent use: the engine reports from every search goroutine.
type Collector interface {
	AddEvaluation(depth int)
	AddBranching(children int)
	AddSearch(elapsed time.Duration)
	Summary() Summary
}

type collector struct {
	mu           sync.Mutex
	searches     int
	elapsed      time.Duration
	evalsByDepth map[int]int64
	branchSum    int64
	branchCount  int64
}

func NewCollector() Collector {
	return &collector{evalsByDepth: map[int]int64{}}
}

func (c *collector) AddEvaluation(depth int) {
	c.mu.Lock()
	c.evalsByDepth[depth]++
	c.mu.Unlock()
}

func (c *collector) AddBranching(children int) {
	c.mu.Lock()
	c.branchSum += int64(children)
	c.branchCount++
	c.mu.Unlock()
}

func (c *collector) AddSearch(elapsed time.Duration) {
	c.mu.Lock()
	c.searches++
	c.elapsed += elapsed
	c.mu.Unlock()
}

func (c *collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	byDepth := make(map[int]int64, len(c.evalsByDepth))
	var total int64
	for depth, count := range c.evalsByDepth {
		byDepth[depth] = count
		total += count
	}
	summary := Summary{
		Searches:           c.searches,
		Elapsed:            c.elapsed,
		Evaluations:        total,
		EvaluationsByDepth: byDepth,
	}
	if c.branchCount > 0 {
		summary.AverageBranching = float64(c.branchSum) / float64(c.branchCount)
	}
	return summary
}

type nopCollector struct{}

func NewNopCollector() Collector {
	return nopCollector{}
}

func (nopCollector) AddEvaluation(depth int)         {}
func (nopCollector) AddBranching(children int)       {}
func (nopCollector) AddSearch(elapsed time.Duration) {}
func (nopCollector) Summary() Summary                { return Summary{} }
