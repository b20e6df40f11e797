package player

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"wargame/broker"
	"wargame/game"
)

// Awaiter hands over the opponent's move once it reaches the relay.
type Awaiter interface {
	Await(ctx context.Context, turn int) (broker.Message, error)
}

// Remote plays the moves an opponent publishes on a game broker. The
// decode hook turns a wire message into a move of the concrete game.
type Remote struct {
	role   game.Role
	relay  Awaiter
	decode func(broker.Message) (game.Move, error)
}

func NewRemote(role game.Role, relay Awaiter, decode func(broker.Message) (game.Move, error)) *Remote {
	return &Remote{role: role, relay: relay, decode: decode}
}

func (r *Remote) Role() game.Role {
	return r.role
}

func (r *Remote) NextMove(ctx context.Context, state game.State) (game.Move, error) {
	msg, err := r.relay.Await(ctx, state.Plies()+1)
	if err != nil {
		return nil, fmt.Errorf("failed to receive a move for %v: %w", r.role, err)
	}

	move, err := r.decode(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode the move for turn %d: %w", msg.Turn, err)
	}
	if !slices.Contains(state.LegalMoves(), move) {
		return nil, fmt.Errorf("received %v for turn %d: %w", move, msg.Turn, game.ErrIllegalMove)
	}

	log.Debug().Msgf("%v received %v from the broker", r.role, move)
	return move, nil
}
