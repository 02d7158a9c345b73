package models

import "github.com/arijit-sen/ludo/internal/board"

// PieceStatus tracks where a piece is in its lifecycle.
type PieceStatus int

const (
	PieceLocked PieceStatus = iota // in the team's locked zone
	PieceActive                    // on the ring or a home lane
	PieceHome                      // reached the terminus
)

// Piece is one of a team's four tokens. Position and Status are kept
// mutually consistent by the coordinator: Locked pieces sit on the team's
// locked-zone marker, Home pieces on the terminus.
type Piece struct {
	ID       string      `json:"pieceId"`
	Team     board.Team  `json:"team"`
	Position string      `json:"position"`
	Score    int         `json:"score"`
	Status   PieceStatus `json:"status"`
}

// Player is a seated participant. The team assignment is fixed when the
// room seats them and never changes.
type Player struct {
	Name string     `json:"name"`
	Team board.Team `json:"team"`
}
