package game

import (
	"errors"
	"fmt"
)

// Role identifies one of the two sides. The attacker always maximizes the
// evaluation, the defender minimizes it.
type Role int

const (
	Attacker Role = iota
	Defender
)

func (r Role) String() string {
	switch r {
	case Attacker:
		return "Attacker"
	case Defender:
		return "Defender"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Opponent returns the other side.
func (r Role) Opponent() Role {
	if r == Attacker {
		return Defender
	}
	return Attacker
}

// Outcome reports how a game ended, or Ongoing while it has not.
type Outcome int

const (
	Ongoing Outcome = iota
	AttackerWins
	DefenderWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case AttackerWins:
		return "Attacker wins"
	case DefenderWins:
		return "Defender wins"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Winner returns the winning role for a decisive outcome.
func (o Outcome) Winner() (Role, bool) {
	switch o {
	case AttackerWins:
		return Attacker, true
	case DefenderWins:
		return Defender, true
	default:
		return 0, false
	}
}

// ErrIllegalMove is returned by State.Play for a move that is not in the
// state's legal set.
var ErrIllegalMove = errors.New("illegal move")

// Move is a single action by the side to move. Concrete move types must be
// comparable so legality can be checked against the legal-move list.
type Move interface {
	fmt.Stringer
}

// State is an immutable game position - operations on State always return a
// new copy, the receiver is never mutated.
type State interface {
	fmt.Stringer

	// ToMove returns the side holding the turn.
	ToMove() Role

	// LegalMoves enumerates every legal move for the side to move, in a
	// deterministic order. The order is load-bearing: tie-breaks during
	// search keep the first move encountered. Empty iff the side to move
	// has no legal move.
	LegalMoves() []Move

	// Play returns the successor state with the move applied and the turn
	// advanced, or ErrIllegalMove.
	Play(Move) (State, error)

	// Outcome reports Ongoing until the game has ended.
	Outcome() Outcome

	// Plies returns the number of moves played since the initial state.
	Plies() int
}

// MoveParser is implemented by states whose moves have a textual notation.
// Interactive players use it to turn typed input into a Move.
type MoveParser interface {
	ParseMove(string) (Move, error)
}

// MoveDescriber is implemented by states that can describe what a legal
// move does, for transcripts and logs.
type MoveDescriber interface {
	DescribeMove(Move) string
}

// Evaluate scores a state from the attacker's perspective: positive favors
// the attacker, negative the defender. Implementations must be pure,
// deterministic and bounded well inside the saturating win/loss scores.
type Evaluate func(State) int
