package game

import (
	"github.com/arijit-sen/ludo/internal/board"
	"github.com/arijit-sen/ludo/internal/models"
)

// EventType names an outbound event broadcast to a room's participants.
// The names are the wire protocol the clients already speak.
type EventType string

const (
	EventPlayerJoined  EventType = "PLAYER_JOINED"
	EventRoomUpdate    EventType = "ROOM_UPDATE"
	EventStartGame     EventType = "START_GAME"
	EventDiceRolled    EventType = "DICE_ROLLED"
	EventPieceUnlocked EventType = "PIECE_UNLOCKED"
	EventPieceMoved    EventType = "PIECE_MOVED"
	EventPieceCaptured EventType = "PIECE_CAPTURED"
	EventTurnSkipped   EventType = "TURN_SKIPPED"
	EventTurnChanged   EventType = "TURN_CHANGED"
	EventStandings     EventType = "STANDINGS_UPDATE"
)

// Event is the single broadcast envelope. Fields are filled per event type
// and omitted otherwise, so the JSON matches the original payload shapes
// (DICE_ROLLED carries value/by, PIECE_MOVED carries id/dice, and so on).
type Event struct {
	Type EventType `json:"type"`

	Value   int    `json:"value,omitempty"` // DICE_ROLLED
	By      string `json:"by,omitempty"`    // DICE_ROLLED, TURN_SKIPPED
	To      string `json:"to,omitempty"`    // TURN_CHANGED
	Bonus   bool   `json:"bonus,omitempty"` // TURN_CHANGED
	PieceID string `json:"id,omitempty"`    // PIECE_UNLOCKED, PIECE_MOVED, PIECE_CAPTURED
	Dice    int    `json:"dice,omitempty"`  // PIECE_MOVED

	Players []models.Player `json:"players,omitempty"` // ROOM_UPDATE, START_GAME
	Teams   []board.Team    `json:"teams,omitempty"`   // STANDINGS_UPDATE, ordered by finish
}

// BroadcastFunc delivers an event to every participant of a room. The
// engine never sees connections; the transport injects this.
type BroadcastFunc func(ev Event)

// TurnOutcome is the transient result of resolving one action. It is not
// persisted beyond the events it triggers.
type TurnOutcome struct {
	RolledValue  int
	BonusGranted bool
	Captured     *models.Piece
}
