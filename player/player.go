// Package player supplies the move sources a match can be assembled
// from: interactive humans, search-backed automated players, a uniform
// random baseline and a relay-driven remote opponent.
package player

import (
	"context"

	"wargame/game"
)

// Player produces the next move for one side. NextMove blocks until a
// move is available: for a human that is typed input, for an automated
// player the end of the search, for a remote player the opponent's
// publication.
type Player interface {
	Role() game.Role
	NextMove(ctx context.Context, state game.State) (game.Move, error)
}
