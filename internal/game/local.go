package game

import (
	"errors"

	"github.com/arijit-sen/ludo/internal/models"
)

// LocalEngine drives a same-device match through the exact same room and
// resolver as the hosted service, embedded in-process: events are
// delivered synchronously to the sink and the idle timer is disabled,
// since all players share one screen. There is one rule implementation,
// not two.
type LocalEngine struct {
	room *Room
}

// NewLocalEngine seats the given display names (2-4) and starts the match
// immediately. The sink receives every event in mutation order before the
// triggering call returns.
func NewLocalEngine(names []string, sink BroadcastFunc) (*LocalEngine, error) {
	if len(names) < 2 || len(names) > 4 {
		return nil, ErrBadCapacity
	}
	room := NewRoom(len(names))
	room.TurnTimeout = 0
	room.BroadcastFn = sink
	for _, n := range names {
		if err := room.AddPlayer(n); err != nil {
			return nil, err
		}
	}
	if !room.Started {
		return nil, errors.New("local engine failed to start")
	}
	return &LocalEngine{room: room}, nil
}

// Roll rolls for the named player.
func (e *LocalEngine) Roll(name string) { e.room.HandleRoll(name) }

// Unlock brings one of the player's locked pieces into play.
func (e *LocalEngine) Unlock(name, pieceID string) { e.room.HandleUnlock(name, pieceID) }

// Move advances one of the player's active pieces by the last roll.
func (e *LocalEngine) Move(name, pieceID string) { e.room.HandleMove(name, pieceID) }

// CurrentPlayer reports whose turn it is.
func (e *LocalEngine) CurrentPlayer() (models.Player, bool) { return e.room.CurrentPlayer() }

// Pieces returns a snapshot of every piece.
func (e *LocalEngine) Pieces() []models.Piece { return e.room.PieceSnapshot() }

// Standings returns the finish order so far.
func (e *LocalEngine) Standings() []string {
	teams := e.room.FinishedOrder()
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = string(t)
	}
	return out
}

// Room exposes the underlying room for advanced callers (tests, embedded
// tooling). The room's own locking still applies.
func (e *LocalEngine) Room() *Room { return e.room }
