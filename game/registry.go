package game

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidHeuristic is returned when a heuristic id does not resolve to a
// registered evaluation function.
var ErrInvalidHeuristic = errors.New("invalid heuristic id")

// The registry maps the stable integer ids from the command-line surface to
// evaluation functions. It is populated from package init functions and
// read-only afterwards, so lookups need no locking.
var heuristics = map[int]Evaluate{}

// RegisterHeuristic binds an evaluation function to an id. It is meant to be
// called from init; a duplicate or nil registration is a programming error
// and panics.
func RegisterHeuristic(id int, fn Evaluate) {
	if fn == nil {
		panic(fmt.Sprintf("heuristic %d: nil evaluation function", id))
	}
	if _, ok := heuristics[id]; ok {
		panic(fmt.Sprintf("heuristic %d: already registered", id))
	}
	heuristics[id] = fn
}

// HeuristicFor resolves an id to its evaluation function.
func HeuristicFor(id int) (Evaluate, error) {
	fn, ok := heuristics[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d (registered: %v)", ErrInvalidHeuristic, id, HeuristicIDs())
	}
	return fn, nil
}

// HeuristicIDs lists the registered ids in ascending order.
func HeuristicIDs() []int {
	ids := make([]int, 0, len(heuristics))
	for id := range heuristics {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
