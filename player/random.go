package player

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"

	"wargame/game"
	"wargame/searcher"
)

// Random picks uniformly among the legal moves. It serves as a baseline
// opponent in experiments.
type Random struct {
	role game.Role
	rng  *rand.Rand
}

func NewRandom(role game.Role, seed uint64) *Random {
	return &Random{role: role, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Role() game.Role {
	return r.role
}

func (r *Random) NextMove(ctx context.Context, state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, fmt.Errorf("failed to find a move for %v: %w", r.role, searcher.ErrNoLegalMoves)
	}
	return moves[r.rng.Intn(len(moves))], nil
}
