package rules

import (
	"fmt"
	"strings"

	"wargame/game"
)

// Dim is the board size.
const Dim = 5

// DefaultMaxTurns ends the game in the defender's favor once this many plies
// have been played.
const DefaultMaxTurns = 100

// Board is a full game position: the grid, the side to move and the ply
// count. Board implements game.State; it is a value type and Play copies it,
// so a Board handed out is never mutated.
type Board struct {
	cells    [Dim][Dim]Unit
	toMove   game.Role
	plies    int
	maxTurns int
}

// NewBoard returns the standard starting position with the attacker to move.
func NewBoard(maxTurns int) *Board {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	b := &Board{toMove: game.Attacker, maxTurns: maxTurns}

	md := Dim - 1
	b.place(Coord{0, 0}, game.Defender, AI)
	b.place(Coord{1, 0}, game.Defender, Tech)
	b.place(Coord{0, 1}, game.Defender, Tech)
	b.place(Coord{2, 0}, game.Defender, Firewall)
	b.place(Coord{0, 2}, game.Defender, Firewall)
	b.place(Coord{1, 1}, game.Defender, Program)
	b.place(Coord{md, md}, game.Attacker, AI)
	b.place(Coord{md - 1, md}, game.Attacker, Virus)
	b.place(Coord{md, md - 1}, game.Attacker, Virus)
	b.place(Coord{md - 2, md}, game.Attacker, Program)
	b.place(Coord{md, md - 2}, game.Attacker, Program)
	b.place(Coord{md - 1, md - 1}, game.Attacker, Firewall)
	return b
}

func (b *Board) place(c Coord, owner game.Role, kind UnitKind) {
	b.cells[c.Row][c.Col] = Unit{Owner: owner, Kind: kind, Health: MaxHealth}
}

// Position builds an arbitrary board, for analysis tooling and tests.
// Units on invalid cells and dead units are dropped.
func Position(toMove game.Role, plies, maxTurns int, units map[Coord]Unit) *Board {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	b := &Board{toMove: toMove, plies: plies, maxTurns: maxTurns}
	for c, u := range units {
		if c.Valid() && u.Alive() {
			b.cells[c.Row][c.Col] = u
		}
	}
	return b
}

// At returns the unit on a cell, if any.
func (b *Board) At(c Coord) (Unit, bool) {
	if !c.Valid() {
		return Unit{}, false
	}
	u := b.cells[c.Row][c.Col]
	return u, u.Alive()
}

// ToMove returns the side holding the turn.
func (b *Board) ToMove() game.Role {
	return b.toMove
}

// Plies returns the number of moves played since the initial position.
func (b *Board) Plies() int {
	return b.plies
}

// MaxTurns returns the ply limit after which the defender wins.
func (b *Board) MaxTurns() int {
	return b.maxTurns
}

// units visits every live unit of owner in row-major order. The visit order
// is the basis of the canonical move enumeration.
func (b *Board) units(owner game.Role, visit func(Coord, Unit)) {
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			u := b.cells[row][col]
			if u.Alive() && u.Owner == owner {
				visit(Coord{row, col}, u)
			}
		}
	}
}

// modHealth adjusts the health of the unit on a cell, clamping to
// [0, MaxHealth] and clearing the cell when the unit dies. No-op on an
// empty cell.
func (b *Board) modHealth(c Coord, delta int) {
	if !c.Valid() {
		return
	}
	u := b.cells[c.Row][c.Col]
	if !u.Alive() {
		return
	}
	u.Health += delta
	if u.Health < 0 {
		u.Health = 0
	} else if u.Health > MaxHealth {
		u.Health = MaxHealth
	}
	if !u.Alive() {
		u = Unit{}
	}
	b.cells[c.Row][c.Col] = u
}

// Grid renders the board grid with column and row labels, without the turn
// header. Empty cells render as dots.
func (b *Board) Grid() string {
	var sb strings.Builder
	sb.WriteString("\n   ")
	for col := 0; col < Dim; col++ {
		sb.WriteString(center3(Coord{0, col}.String()[1:]))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	for row := 0; row < Dim; row++ {
		sb.WriteString(Coord{row, 0}.String()[:1])
		sb.WriteString(": ")
		for col := 0; col < Dim; col++ {
			u := b.cells[row][col]
			if u.Alive() {
				sb.WriteString(center3(u.String()))
			} else {
				sb.WriteString(" . ")
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders the position for the console: side to move, ply count and
// the grid.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Next player: %s\n", b.toMove)
	fmt.Fprintf(&sb, "Turns played: %d\n", b.plies)
	sb.WriteString(b.Grid())
	return sb.String()
}

func center3(s string) string {
	switch len(s) {
	case 0:
		return "   "
	case 1:
		return " " + s + " "
	case 2:
		return " " + s
	default:
		return s[:3]
	}
}
