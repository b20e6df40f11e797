// Package engine drives a match between two players. The controller owns
// the live game state: it asks the side to move for an action, validates
// it against the legal-move list, applies it and repeats until the game
// reports a result.
package engine

import (
	"wargame/game"
)

// MaxMoves caps a match on a game whose own rules never terminate. The
// concrete wargame ends on its ply limit long before this; the cap only
// guards synthetic games.
const MaxMoves = 10000

// Event describes one applied move. Before and After are the positions
// around the move; Turn is the ply count after it, counting from 1.
type Event struct {
	Mover  game.Role
	Turn   int
	Move   game.Move
	Before game.State
	After  game.State
}

// Observer is notified after every applied move, before the next player
// is asked. Observers run on the match goroutine; a slow observer slows
// the match.
type Observer func(Event)
