package searcher

import (
	"fmt"

	"wargame/game"
)

// The tests drive the engine with a synthetic game: an explicit tree whose
// positions carry a fixed side to move, outcome, frontier value and an
// ordered child list. No concrete rules package is involved.

type step string

func (s step) String() string { return string(s) }

type edge struct {
	move step
	to   *node
}

type node struct {
	name    string
	toMove  game.Role
	outcome game.Outcome
	value   int
	edges   []edge
}

type treeState struct {
	n     *node
	plies int
}

func (s treeState) String() string        { return s.n.name }
func (s treeState) ToMove() game.Role     { return s.n.toMove }
func (s treeState) Outcome() game.Outcome { return s.n.outcome }
func (s treeState) Plies() int            { return s.plies }

func (s treeState) LegalMoves() []game.Move {
	moves := make([]game.Move, len(s.n.edges))
	for i, e := range s.n.edges {
		moves[i] = e.move
	}
	return moves
}

func (s treeState) Play(mv game.Move) (game.State, error) {
	for _, e := range s.n.edges {
		if e.move == mv {
			return treeState{n: e.to, plies: s.plies + 1}, nil
		}
	}
	return nil, game.ErrIllegalMove
}

func treeEvaluate(s game.State) int { return s.(treeState).n.value }

func leaf(value int) *node {
	return &node{name: fmt.Sprintf("leaf(%d)", value), value: value}
}

func won(outcome game.Outcome) *node {
	return &node{name: outcome.String(), outcome: outcome}
}

func branch(name string, toMove game.Role, value int, edges ...edge) *node {
	return &node{name: name, toMove: toMove, value: value, edges: edges}
}

// pruningTree is the classic height-2 pruning example. At depth 2 the
// minimum of each child is 3, 2, 2, so the root picks "a" with score 3.
// Search it no deeper than 2.
func pruningTree() *node {
	return branch("root", game.Attacker, 0,
		edge{"a", branch("n1", game.Defender, 3,
			edge{"a1", leaf(3)}, edge{"a2", leaf(12)}, edge{"a3", leaf(8)})},
		edge{"b", branch("n2", game.Defender, 2,
			edge{"b1", leaf(2)}, edge{"b2", leaf(4)}, edge{"b3", leaf(6)})},
		edge{"c", branch("n3", game.Defender, 2,
			edge{"c1", leaf(14)}, edge{"c2", leaf(5)}, edge{"c3", leaf(2)})},
	)
}

// alternatingTree is three plies deep with uneven fanout. Depth-3 minimax
// gives d1 -> 4, d2 -> 2, d3 -> 6, so the root picks "d3" with score 6.
func alternatingTree() *node {
	return branch("root", game.Attacker, 0,
		edge{"d1", branch("m1", game.Defender, 1,
			edge{"d1a", branch("p1", game.Attacker, 2,
				edge{"x1", leaf(4)}, edge{"x2", leaf(-2)})},
			edge{"d1b", branch("p2", game.Attacker, 3,
				edge{"x3", leaf(10)})},
		)},
		edge{"d2", branch("m2", game.Defender, 8,
			edge{"d2a", branch("p3", game.Attacker, 4,
				edge{"x4", leaf(3)}, edge{"x5", leaf(9)})},
			edge{"d2b", branch("p4", game.Attacker, 5,
				edge{"x6", leaf(1)}, edge{"x7", leaf(2)}, edge{"x8", leaf(0)})},
		)},
		edge{"d3", branch("m3", game.Defender, 5,
			edge{"d3a", branch("p5", game.Attacker, 6,
				edge{"x9", leaf(6)})},
		)},
	)
}

// winInOneTree gives the attacker an immediate winning capture among
// non-winning alternatives, searchable at any depth: the losing branch is
// terminal and the quiet branch bottoms out in terminal positions.
func winInOneTree() *node {
	return branch("root", game.Attacker, 0,
		edge{"lose", won(game.DefenderWins)},
		edge{"quiet", branch("meh", game.Defender, 50,
			edge{"reply", branch("deep", game.Attacker, 7,
				edge{"last", won(game.DefenderWins)})},
		)},
		edge{"win", won(game.AttackerWins)},
	)
}

// wideTree returns a uniform tree for the timeout tests: every interior
// position has fanout children and the root's children carry their index
// as value, so the depth-1 pick for the attacker is the last move.
func wideTree(fanout, height int, toMove game.Role) *node {
	root := branch("root", toMove, 0)
	for i := 0; i < fanout; i++ {
		child := wideSubtree(fanout, height-1, toMove.Opponent(), i)
		root.edges = append(root.edges, edge{step(fmt.Sprintf("m%d", i)), child})
	}
	return root
}

func wideSubtree(fanout, height int, toMove game.Role, value int) *node {
	n := branch(fmt.Sprintf("n%d@%d", value, height), toMove, value)
	if height == 0 {
		return n
	}
	for i := 0; i < fanout; i++ {
		n.edges = append(n.edges, edge{step(fmt.Sprintf("m%d", i)), wideSubtree(fanout, height-1, toMove.Opponent(), value*fanout+i)})
	}
	return n
}
