package rules

import (
	"fmt"

	"wargame/game"
)

// ActionKind is what a source/destination pair resolves to.
type ActionKind int

const (
	Movement ActionKind = iota
	Attack
	Repair
	SelfDestruct
)

func (k ActionKind) String() string {
	switch k {
	case Movement:
		return "move"
	case Attack:
		return "attack"
	case Repair:
		return "repair"
	case SelfDestruct:
		return "self-destruct"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Outcome checks the end conditions in order: ply limit (defender wins),
// attacker's AI destroyed (defender wins, even if both AIs died on the same
// action), defender's AI destroyed (attacker wins).
func (b *Board) Outcome() game.Outcome {
	if b.plies >= b.maxTurns {
		return game.DefenderWins
	}
	if !b.hasAI(game.Attacker) {
		return game.DefenderWins
	}
	if !b.hasAI(game.Defender) {
		return game.AttackerWins
	}
	return game.Ongoing
}

func (b *Board) hasAI(owner game.Role) bool {
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			u := b.cells[row][col]
			if u.Alive() && u.Owner == owner && u.Kind == AI {
				return true
			}
		}
	}
	return false
}

// LegalMoves enumerates the side to move's legal moves in the canonical
// order: units in row-major board order; per unit the four destinations up,
// left, down, right, then self-destruct.
func (b *Board) LegalMoves() []game.Move {
	var moves []game.Move
	b.units(b.toMove, func(src Coord, _ Unit) {
		for _, dst := range src.adjacent() {
			mv := Move{Src: src, Dst: dst}
			if _, ok := b.Classify(mv); ok {
				moves = append(moves, mv)
			}
		}
		moves = append(moves, Move{Src: src, Dst: src})
	})
	return moves
}

// Classify resolves a pair to its action kind, reporting false for an
// illegal pair. The source must hold a unit owned by the side to move.
func (b *Board) Classify(mv Move) (ActionKind, bool) {
	if !mv.Src.Valid() || !mv.Dst.Valid() {
		return 0, false
	}
	src, ok := b.At(mv.Src)
	if !ok || src.Owner != b.toMove {
		return 0, false
	}
	if mv.Src == mv.Dst {
		return SelfDestruct, true
	}
	if !isAdjacent(mv.Src, mv.Dst) {
		return 0, false
	}
	dst, occupied := b.At(mv.Dst)
	if !occupied {
		if b.canStep(mv, src) {
			return Movement, true
		}
		return 0, false
	}
	if dst.Owner != src.Owner {
		return Attack, true
	}
	if src.RepairTo(dst) > 0 {
		return Repair, true
	}
	return 0, false
}

// DescribeMove implements game.MoveDescriber: "attack C4 -> C3" style
// fragments for transcripts.
func (b *Board) DescribeMove(mv game.Move) string {
	m, ok := mv.(Move)
	if !ok {
		return mv.String()
	}
	kind, ok := b.Classify(m)
	if !ok {
		return fmt.Sprintf("invalid %v -> %v", m.Src, m.Dst)
	}
	return fmt.Sprintf("%v %v -> %v", kind, m.Src, m.Dst)
}

// canStep checks the movement restrictions for a step onto an empty
// adjacent cell: the attacker's AI, Firewall and Program only move up or
// left and the defender's only down or right, and none of the three may
// move while engaged with an adversarial unit. Tech and Virus move freely.
func (b *Board) canStep(mv Move, src Unit) bool {
	if src.Kind == Tech || src.Kind == Virus {
		return true
	}
	if src.Owner == game.Attacker {
		if mv.Dst.Row > mv.Src.Row || mv.Dst.Col > mv.Src.Col {
			return false
		}
	} else {
		if mv.Dst.Row < mv.Src.Row || mv.Dst.Col < mv.Src.Col {
			return false
		}
	}
	for _, adj := range mv.Src.adjacent() {
		if other, ok := b.At(adj); ok && other.Owner != src.Owner {
			return false
		}
	}
	return true
}

func isAdjacent(a, b Coord) bool {
	for _, adj := range a.adjacent() {
		if adj == b {
			return true
		}
	}
	return false
}

// Play applies a move and returns the successor with the turn advanced. The
// receiver is copied, never mutated.
func (b *Board) Play(mv game.Move) (game.State, error) {
	m, ok := mv.(Move)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a board move", game.ErrIllegalMove, mv)
	}
	kind, ok := b.Classify(m)
	if !ok {
		return nil, fmt.Errorf("%w: %s for %s", game.ErrIllegalMove, m, b.toMove)
	}

	next := *b
	next.apply(m, kind)
	next.toMove = next.toMove.Opponent()
	next.plies++
	return &next, nil
}

func (b *Board) apply(mv Move, kind ActionKind) {
	switch kind {
	case Movement:
		b.cells[mv.Dst.Row][mv.Dst.Col] = b.cells[mv.Src.Row][mv.Src.Col]
		b.cells[mv.Src.Row][mv.Src.Col] = Unit{}
	case Attack:
		src, _ := b.At(mv.Src)
		dst, _ := b.At(mv.Dst)
		// Damage is simultaneous: both amounts come from the pre-attack
		// healths.
		damageToDst := src.DamageTo(dst)
		damageToSrc := dst.DamageTo(src)
		b.modHealth(mv.Src, -damageToSrc)
		b.modHealth(mv.Dst, -damageToDst)
	case Repair:
		src, _ := b.At(mv.Src)
		dst, _ := b.At(mv.Dst)
		b.modHealth(mv.Dst, src.RepairTo(dst))
	case SelfDestruct:
		b.modHealth(mv.Src, -MaxHealth)
		for _, c := range mv.Src.surrounding() {
			b.modHealth(c, -2)
		}
	}
}
