package player

import (
	"context"
	"fmt"
	"io"
	"slices"

	"wargame/game"
)

// MoveReader supplies one line of move text per call. Implementations
// return io.EOF when the input source is exhausted.
type MoveReader interface {
	ReadMove(prompt string) (string, error)
}

// Human asks a MoveReader for moves and keeps prompting until the input
// parses and is legal in the current position. It never substitutes a
// move on the player's behalf.
type Human struct {
	role   game.Role
	reader MoveReader
	out    io.Writer
}

func NewHuman(role game.Role, reader MoveReader, out io.Writer) *Human {
	return &Human{role: role, reader: reader, out: out}
}

func (h *Human) Role() game.Role {
	return h.role
}

func (h *Human) NextMove(ctx context.Context, state game.State) (game.Move, error) {
	parser, ok := state.(game.MoveParser)
	if !ok {
		return nil, fmt.Errorf("failed to read a move: %T has no move notation", state)
	}

	prompt := fmt.Sprintf("Player %v, enter your move: ", h.role)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, err := h.reader.ReadMove(prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to read a move for %v: %w", h.role, err)
		}

		move, err := parser.ParseMove(line)
		if err != nil {
			fmt.Fprintln(h.out, "Invalid coordinates! Try again.")
			continue
		}
		if !slices.Contains(state.LegalMoves(), move) {
			fmt.Fprintln(h.out, "The move is not valid! Try again.")
			continue
		}
		return move, nil
	}
}
