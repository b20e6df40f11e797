package rules

import (
	"fmt"
	"strings"

	"wargame/game"
)

const (
	rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	colDigits  = "0123456789abcdef"
)

// Coord addresses a board cell. Rows render as letters, columns as digits,
// so the top-left cell is A0.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	row, col := "?", "?"
	if c.Row >= 0 && c.Row < len(rowLetters) {
		row = string(rowLetters[c.Row])
	}
	if c.Col >= 0 && c.Col < len(colDigits) {
		col = string(colDigits[c.Col])
	}
	return row + col
}

// Valid reports whether the coordinate is on the board.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Dim && c.Col >= 0 && c.Col < Dim
}

// adjacent returns the four orthogonal neighbors in the canonical order
// up, left, down, right. The order is load-bearing: move enumeration and
// therefore search tie-breaking follow it.
func (c Coord) adjacent() [4]Coord {
	return [4]Coord{
		{c.Row - 1, c.Col},
		{c.Row, c.Col - 1},
		{c.Row + 1, c.Col},
		{c.Row, c.Col + 1},
	}
}

// surrounding returns the on-board cells of the 3x3 area centered on c,
// center included, in row-major order.
func (c Coord) surrounding() []Coord {
	cells := make([]Coord, 0, 9)
	for row := c.Row - 1; row <= c.Row+1; row++ {
		for col := c.Col - 1; col <= c.Col+1; col++ {
			n := Coord{row, col}
			if n.Valid() {
				cells = append(cells, n)
			}
		}
	}
	return cells
}

// Move is a source/destination cell pair. Source equal to destination means
// self-destruct; otherwise the pair resolves to movement, attack or repair
// depending on what occupies the destination.
type Move struct {
	Src Coord
	Dst Coord
}

func (m Move) String() string {
	return m.Src.String() + " " + m.Dst.String()
}

// ParseMove reads a move like "A3 B3". Case and the separators " ,.:;-_"
// are ignored, so "a3b3" and "A3,B3" parse the same. Both cells must be on
// the board.
func ParseMove(s string) (Move, error) {
	cleaned := strings.TrimSpace(s)
	for _, sep := range " ,.:;-_" {
		cleaned = strings.ReplaceAll(cleaned, string(sep), "")
	}
	if len(cleaned) != 4 {
		return Move{}, fmt.Errorf("cannot parse move %q: want two cells like A3 B3", s)
	}
	src, err := parseCoord(cleaned[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("cannot parse move %q: %v", s, err)
	}
	dst, err := parseCoord(cleaned[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("cannot parse move %q: %v", s, err)
	}
	return Move{Src: src, Dst: dst}, nil
}

// ParseMove implements game.MoveParser for Board.
func (b *Board) ParseMove(s string) (game.Move, error) {
	mv, err := ParseMove(s)
	if err != nil {
		return nil, err
	}
	return mv, nil
}

func parseCoord(s string) (Coord, error) {
	c := Coord{
		Row: strings.IndexByte(rowLetters, byte(strings.ToUpper(s)[0])),
		Col: strings.IndexByte(colDigits, byte(strings.ToLower(s)[1])),
	}
	if !c.Valid() {
		return Coord{}, fmt.Errorf("cell %q is not on the board", s)
	}
	return c, nil
}
