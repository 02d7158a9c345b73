package game

import (
	"github.com/arijit-sen/ludo/internal/board"
	"github.com/arijit-sen/ludo/internal/models"
)

// ComputePath returns the exact ordered sequence of tiles a piece crosses
// for a given die value. It is a pure function: both the hosted coordinator
// and the local engine rely on identical inputs producing identical paths.
//
// An empty path means the move is illegal (home-lane overshoot) or the
// piece cannot move; callers treat that as a forced pass, never an error.
func ComputePath(p *models.Piece, die int) []string {
	if p == nil || p.Status != models.PieceActive || die < 1 || die > 6 {
		return nil
	}

	lane := board.HomeLane(p.Team)

	// Home-lane pieces step only toward the terminus. Overshooting it is
	// an illegal move and yields no path.
	if board.IsHomeLaneTile(p.Position) {
		idx := -1
		for i, tile := range lane {
			if tile == p.Position {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		remaining := len(lane) - 1 - idx
		if die > remaining {
			return nil
		}
		path := make([]string, 0, die)
		path = append(path, lane[idx+1:idx+1+die]...)
		return path
	}

	ringIdx, ok := board.RingIndex(p.Position)
	if !ok {
		return nil
	}

	// Walk the ring, diverting the remaining steps into the home lane the
	// moment the piece stands on its team's divert tile.
	divert := board.DivertTile(p.Team)
	path := make([]string, 0, die)
	pos := ringIdx
	for i := 0; i < die; i++ {
		if board.RingTileAt(pos) == divert {
			path = append(path, lane[:die-i]...)
			return path
		}
		pos++
		path = append(path, board.RingTileAt(pos))
	}
	return path
}
