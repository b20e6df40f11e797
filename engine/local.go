package engine

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"wargame/game"
	"wargame/player"
)

type LocalOption func(e *Local)

// WithObserver adds an observer of applied moves. Observers are called in
// registration order.
func WithObserver(observer Observer) LocalOption {
	return func(e *Local) {
		if observer != nil {
			e.observers = append(e.observers, observer)
		}
	}
}

// WithMaxMoves overrides the match-length guard.
func WithMaxMoves(max int) LocalOption {
	return func(e *Local) {
		if max > 0 {
			e.maxMoves = max
		}
	}
}

// Local runs a match in-process. The zero value is not usable; construct
// with NewLocal.
type Local struct {
	state     game.State
	players   map[game.Role]player.Player
	maxMoves  int
	observers []Observer
}

// NewLocal builds a match controller over the initial state. Each player
// must carry the role it is handed.
func NewLocal(state game.State, attacker, defender player.Player, options ...LocalOption) (*Local, error) {
	if attacker.Role() != game.Attacker {
		return nil, fmt.Errorf("failed to set up the match: attacker slot holds a %v player", attacker.Role())
	}
	if defender.Role() != game.Defender {
		return nil, fmt.Errorf("failed to set up the match: defender slot holds a %v player", defender.Role())
	}

	e := &Local{
		state: state,
		players: map[game.Role]player.Player{
			game.Attacker: attacker,
			game.Defender: defender,
		},
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// State returns the live position.
func (e *Local) State() game.State {
	return e.state
}

// Run loops until the game reports a result: ask the side to move, check
// the move against the legal list, apply it, notify observers. A move
// outside the legal list aborts the match as an internal-consistency bug,
// since every player validates its own input before returning.
func (e *Local) Run(ctx context.Context) (game.Outcome, error) {
	log.Info().Msgf("match started, %v is first to move", e.state.ToMove())

	for turn := 1; turn <= e.maxMoves; turn++ {
		outcome := e.state.Outcome()
		if outcome != game.Ongoing {
			log.Info().Msgf("match over after %d turns: %v", e.state.Plies(), outcome)
			return outcome, nil
		}

		mover := e.state.ToMove()
		move, err := e.players[mover].NextMove(ctx, e.state)
		if err != nil {
			return game.Ongoing, fmt.Errorf("failed to get turn %d from %v: %w", turn, mover, err)
		}
		if !slices.Contains(e.state.LegalMoves(), move) {
			return game.Ongoing, fmt.Errorf("%v proposed %v on turn %d: %w", mover, move, turn, game.ErrIllegalMove)
		}

		next, err := e.state.Play(move)
		if err != nil {
			return game.Ongoing, fmt.Errorf("failed to apply %v on turn %d: %w", move, turn, err)
		}

		before := e.state
		e.state = next
		log.Info().Msgf("%v - turn #%d: %v", mover, turn, move)
		for _, observer := range e.observers {
			observer(Event{Mover: mover, Turn: turn, Move: move, Before: before, After: next})
		}
	}

	if outcome := e.state.Outcome(); outcome != game.Ongoing {
		log.Info().Msgf("match over after %d turns: %v", e.state.Plies(), outcome)
		return outcome, nil
	}
	return game.Ongoing, fmt.Errorf("match stopped after %d moves without a result", e.maxMoves)
}

// Close releases both players' resources, keeping every close error.
func (e *Local) Close() error {
	var result *multierror.Error
	for _, role := range []game.Role{game.Attacker, game.Defender} {
		if closer, ok := e.players[role].(io.Closer); ok {
			if err := closer.Close(); err != nil {
				result = multierror.Append(result, fmt.Errorf("failed to close the %v player: %w", role, err))
			}
		}
	}
	return result.ErrorOrNil()
}
