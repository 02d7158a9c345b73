package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arijit-sen/ludo/internal/board"
	"github.com/arijit-sen/ludo/internal/models"
)

func activePiece(team board.Team, pos string) *models.Piece {
	return &models.Piece{ID: string(team) + "0", Team: team, Position: pos, Status: models.PieceActive}
}

func TestComputePathRejectsBadInput(t *testing.T) {
	assert.Nil(t, ComputePath(nil, 3))
	assert.Nil(t, ComputePath(activePiece(board.TeamRed, "R1"), 0))
	assert.Nil(t, ComputePath(activePiece(board.TeamRed, "R1"), 7))

	locked := &models.Piece{Team: board.TeamRed, Position: "home_red", Status: models.PieceLocked}
	assert.Nil(t, ComputePath(locked, 6))

	finished := &models.Piece{Team: board.TeamRed, Position: board.Terminus, Status: models.PieceHome}
	assert.Nil(t, ComputePath(finished, 1))
}

func TestComputePathRingWalk(t *testing.T) {
	p := activePiece(board.TeamRed, "R1")
	assert.Equal(t, []string{"R2", "R3", "R4"}, ComputePath(p, 3))

	// The walk crosses arm boundaries; R12 is only a divert for green.
	p = activePiece(board.TeamRed, "R12")
	assert.Equal(t, []string{"R13", "G1"}, ComputePath(p, 2))

	// And wraps past the end of the ring.
	p = activePiece(board.TeamGreen, "B12")
	assert.Equal(t, []string{"B13", "R1"}, ComputePath(p, 2))
}

func TestComputePathDivertsIntoHomeLane(t *testing.T) {
	// Standing exactly on the divert tile: every step goes into the lane.
	p := activePiece(board.TeamBlue, board.DivertTile(board.TeamBlue))
	assert.Equal(t, []string{"Bh1", "Bh2", "Bh3"}, ComputePath(p, 3))

	// Reaching the divert tile mid-walk redirects the remaining steps.
	p = activePiece(board.TeamBlue, "Y10")
	assert.Equal(t, []string{"Y11", "Y12", "Bh1", "Bh2"}, ComputePath(p, 4))

	// A six from the divert tile lands exactly on the terminus.
	p = activePiece(board.TeamBlue, board.DivertTile(board.TeamBlue))
	path := ComputePath(p, 6)
	require.Len(t, path, 6)
	assert.Equal(t, board.Terminus, path[len(path)-1])
}

func TestComputePathHomeLane(t *testing.T) {
	p := activePiece(board.TeamRed, "Rh3")
	assert.Equal(t, []string{"Rh4", "Rh5", board.Terminus}, ComputePath(p, 3))

	p = activePiece(board.TeamRed, "Rh5")
	assert.Equal(t, []string{board.Terminus}, ComputePath(p, 1))
}

func TestComputePathOvershootIsEmpty(t *testing.T) {
	p := activePiece(board.TeamRed, "Rh4")
	assert.Nil(t, ComputePath(p, 5), "overshooting the terminus is illegal")
	assert.Nil(t, ComputePath(activePiece(board.TeamRed, "Rh5"), 2))
}

func TestComputePathIsPure(t *testing.T) {
	p := activePiece(board.TeamYellow, "G3")
	first := ComputePath(p, 4)
	second := ComputePath(p, 4)
	assert.Equal(t, first, second)
	assert.Equal(t, "G3", p.Position, "resolver must not mutate the piece")
	assert.Equal(t, models.PieceActive, p.Status)
	assert.Equal(t, 0, p.Score)
}
