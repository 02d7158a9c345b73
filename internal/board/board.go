// Package board describes the static Ludo board: the 52-tile shared ring,
// the per-team home lanes, and the safe tiles. Everything here is immutable
// lookup data; the movement rules live in the game package.
package board

import "fmt"

// Team identifies one of the four piece colors.
type Team string

const (
	TeamRed    Team = "red"
	TeamGreen  Team = "green"
	TeamYellow Team = "yellow"
	TeamBlue   Team = "blue"
)

// Terminus is the tile a piece occupies once it has finished.
const Terminus = "home"

// PiecesPerTeam is fixed by the rules.
const PiecesPerTeam = 4

// RingSize is the number of tiles on the shared ring.
const RingSize = 52

// tilesPerArm is the number of ring tiles carrying each color prefix.
const tilesPerArm = 13

// laneLength is the number of home-lane tiles before the terminus.
const laneLength = 5

// prefixes orders the four arms as they concatenate into the ring:
// R1..R13, G1..G13, Y1..Y13, B1..B13.
var prefixes = []string{"R", "G", "Y", "B"}

var teamPrefix = map[Team]string{
	TeamRed:    "R",
	TeamGreen:  "G",
	TeamYellow: "Y",
	TeamBlue:   "B",
}

// divertTile is the last ring tile a team crosses before its home lane.
var divertTile = map[Team]string{
	TeamRed:    "B12",
	TeamGreen:  "R12",
	TeamYellow: "G12",
	TeamBlue:   "Y12",
}

var (
	ring      []string
	ringIndex map[string]int
	homeLanes map[Team][]string
	safeTiles map[string]struct{}
	laneTeam  map[string]Team
)

func init() {
	ring = make([]string, 0, RingSize)
	ringIndex = make(map[string]int, RingSize)
	for _, p := range prefixes {
		for i := 1; i <= tilesPerArm; i++ {
			id := fmt.Sprintf("%s%d", p, i)
			ringIndex[id] = len(ring)
			ring = append(ring, id)
		}
	}

	homeLanes = make(map[Team][]string, len(teamPrefix))
	laneTeam = make(map[string]Team)
	safeTiles = make(map[string]struct{})
	for team, p := range teamPrefix {
		lane := make([]string, 0, laneLength+1)
		for i := 1; i <= laneLength; i++ {
			id := fmt.Sprintf("%sh%d", p, i)
			lane = append(lane, id)
			laneTeam[id] = team
			safeTiles[id] = struct{}{}
		}
		lane = append(lane, Terminus)
		homeLanes[team] = lane

		// Each team's ring entry and the tile 9 positions along its arm
		// are safe.
		safeTiles[p+"1"] = struct{}{}
		safeTiles[p+"9"] = struct{}{}
	}
}

// EntryTile is the ring tile where a team's unlocked pieces enter play.
func EntryTile(team Team) string { return teamPrefix[team] + "1" }

// DivertTile is the ring tile from which a team's remaining steps divert
// into its home lane.
func DivertTile(team Team) string { return divertTile[team] }

// LockedZone is the off-ring marker tile for a team's locked pieces.
func LockedZone(team Team) string { return "home_" + string(team) }

// HomeLane returns the team's private lane in walking order, ending with
// the terminus. The returned slice must not be modified.
func HomeLane(team Team) []string { return homeLanes[team] }

// RingIndex reports the position of a tile on the ring, if it is a ring tile.
func RingIndex(tile string) (int, bool) {
	i, ok := ringIndex[tile]
	return i, ok
}

// RingTileAt returns the ring tile at index i mod RingSize.
func RingTileAt(i int) string {
	return ring[((i%RingSize)+RingSize)%RingSize]
}

// IsHomeLaneTile reports whether the tile belongs to any team's home lane
// (the terminus itself is not a lane tile).
func IsHomeLaneTile(tile string) bool {
	_, ok := laneTeam[tile]
	return ok
}

// IsSafe reports whether a piece on this tile is protected from capture.
func IsSafe(tile string) bool {
	_, ok := safeTiles[tile]
	return ok
}

// SeatedTeams returns the team order for a given room capacity. Seating
// follows the original board layout so 2-player games sit opposite corners.
func SeatedTeams(capacity int) []Team {
	switch capacity {
	case 2:
		return []Team{TeamBlue, TeamGreen}
	case 3:
		return []Team{TeamBlue, TeamRed, TeamGreen}
	case 4:
		return []Team{TeamBlue, TeamRed, TeamGreen, TeamYellow}
	default:
		return nil
	}
}
