package game

import (
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arijit-sen/ludo/internal/board"
	"github.com/arijit-sen/ludo/internal/models"
)

// Phase is the turn state machine position for a started room.
type Phase int

const (
	// PhaseAwaitRoll expects the active player to roll the dice.
	PhaseAwaitRoll Phase = iota
	// PhaseAwaitAction expects the active player to unlock or move a piece.
	PhaseAwaitAction
)

// DefaultTurnTimeout is how long an acting player may idle before their
// turn is force-advanced.
const DefaultTurnTimeout = 10 * time.Second

// Room holds the entire state for one match in memory. It is the single
// source of truth for turn order, dice, piece positions, captures and
// standings. All mutation goes through its handler methods, which take the
// mutex; the transport never touches fields directly.
type Room struct {
	ID       uuid.UUID
	Capacity int

	Players []*models.Player // seat order is turn order
	Pieces  []*models.Piece  // 4 per seated team, created at start

	ActiveTurnIndex int
	LastDice        int
	Phase           Phase
	Started         bool
	Over            bool

	// FinishedTeams is the podium, in finish order. A team appears at
	// most once.
	FinishedTeams []board.Team

	// TurnTimeout <= 0 disables the idle timer (local/same-device play).
	TurnTimeout time.Duration

	// DiceFn produces one roll in [1,6]. Injectable for deterministic tests.
	DiceFn func() int

	// BroadcastFn delivers events to every participant. If nil, events
	// are dropped (a room that nobody is attached to yet).
	BroadcastFn BroadcastFunc

	Mu sync.Mutex

	// Idle-turn timer plus its validity token. Arming or cancelling bumps
	// timerSeq so a stale fire can recognize itself and do nothing.
	turnTimer *time.Timer
	timerSeq  int
}

// NewRoom builds an empty room for the given capacity. Capacity must be
// 2, 3 or 4; the registry validates it before calling.
func NewRoom(capacity int) *Room {
	id, _ := uuid.NewRandom()
	return &Room{
		ID:          id,
		Capacity:    capacity,
		TurnTimeout: DefaultTurnTimeout,
		DiceFn:      func() int { return rand.Intn(6) + 1 },
	}
}

// IsFull reports whether every seat is taken. A room is full exactly when
// len(players) == capacity.
func (r *Room) IsFull() bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return len(r.Players) >= r.Capacity
}

// AddPlayer seats a player on the next free seat, fixing their team for
// the life of the session. When the last seat fills the room starts and
// the initial roster is broadcast. Returns ErrRoomFull on a full room.
func (r *Room) AddPlayer(name string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Started || len(r.Players) >= r.Capacity {
		return ErrRoomFull
	}
	teams := board.SeatedTeams(r.Capacity)
	p := &models.Player{Name: name, Team: teams[len(r.Players)]}
	r.Players = append(r.Players, p)

	r.fire(Event{Type: EventPlayerJoined, By: name})
	r.fire(Event{Type: EventRoomUpdate, Players: r.rosterLocked()})

	if len(r.Players) == r.Capacity {
		r.startLocked()
	}
	return nil
}

// startLocked transitions the full room to started: pieces are created in
// their locked zones and the initial roster (turn order) is broadcast.
func (r *Room) startLocked() {
	r.Started = true
	r.ActiveTurnIndex = 0
	r.Phase = PhaseAwaitRoll
	r.Pieces = r.Pieces[:0]
	for _, p := range r.Players {
		for i := 0; i < board.PiecesPerTeam; i++ {
			r.Pieces = append(r.Pieces, &models.Piece{
				ID:       string(p.Team) + strconv.Itoa(i),
				Team:     p.Team,
				Position: board.LockedZone(p.Team),
				Status:   models.PieceLocked,
			})
		}
	}
	log.Printf("Room %s started with %d players.", r.ID, len(r.Players))
	r.fire(Event{Type: EventStartGame, Players: r.rosterLocked()})
}

// HandleRoll rolls the dice for the active player. Out-of-turn or
// wrong-phase requests are ignored without side effects. A player with no
// piece able to act (nothing Active and no 6 rolled) forfeits the action
// phase immediately.
func (r *Room) HandleRoll(name string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.Started || r.Over || !r.isActorLocked(name) || r.Phase != PhaseAwaitRoll {
		return
	}
	r.cancelTurnTimerLocked()

	value := r.DiceFn()
	r.LastDice = value
	r.fire(Event{Type: EventDiceRolled, Value: value, By: name})

	team := r.Players[r.ActiveTurnIndex].Team
	if value != 6 && !r.teamHasActivePieceLocked(team) {
		// No action phase possible for this roll.
		r.forceAdvanceLocked(name)
		return
	}

	r.Phase = PhaseAwaitAction
	r.armTurnTimerLocked()
}

// HandleUnlock moves one of the actor's locked pieces onto its ring entry
// tile. Only legal with a 6 showing. The die is consumed and the same
// player returns to the roll phase with a fresh idle timer.
func (r *Room) HandleUnlock(name, pieceID string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.Started || r.Over || !r.isActorLocked(name) || r.Phase != PhaseAwaitAction {
		return
	}
	if r.LastDice != 6 {
		return
	}
	p := r.pieceLocked(pieceID)
	if p == nil || p.Team != r.Players[r.ActiveTurnIndex].Team || p.Status != models.PieceLocked {
		return
	}
	r.cancelTurnTimerLocked()

	p.Status = models.PieceActive
	p.Position = board.EntryTile(p.Team)
	r.fire(Event{Type: EventPieceUnlocked, PieceID: p.ID})

	r.LastDice = 0
	r.Phase = PhaseAwaitRoll
	r.armTurnTimerLocked()
}

// HandleMove advances one of the actor's active pieces by the last rolled
// value: the resolver computes the path, the capture rule is applied to
// the landing tile, standings are updated, and the turn either stays with
// the actor (bonus) or advances. An overshot home-lane move leaves the
// piece in place but still resolves the turn (forced pass).
func (r *Room) HandleMove(name, pieceID string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.Started || r.Over || !r.isActorLocked(name) || r.Phase != PhaseAwaitAction {
		return
	}
	if r.LastDice < 1 || r.LastDice > 6 {
		return
	}
	p := r.pieceLocked(pieceID)
	if p == nil || p.Team != r.Players[r.ActiveTurnIndex].Team || p.Status != models.PieceActive {
		return
	}
	r.cancelTurnTimerLocked()

	out := r.resolveMoveLocked(p)
	if r.Over {
		return
	}
	r.advanceTurnLocked(out.BonusGranted)
}

// resolveMoveLocked applies one movement: position, score, capture, finish
// detection. Events fire immediately after each mutation so participants
// observe them in mutation order.
func (r *Room) resolveMoveLocked(p *models.Piece) TurnOutcome {
	die := r.LastDice
	out := TurnOutcome{RolledValue: die}

	path := ComputePath(p, die)
	if len(path) > 0 {
		landing := path[len(path)-1]
		p.Position = landing
		p.Score += len(path)
		if landing == board.Terminus {
			p.Status = models.PieceHome
		}
		r.fire(Event{Type: EventPieceMoved, PieceID: p.ID, Dice: die})

		// Landing on the terminus ends the piece; no capture check there.
		if p.Status == models.PieceActive && !board.IsSafe(landing) {
			if victim := r.opponentAtLocked(p.Team, landing); victim != nil {
				victim.Status = models.PieceLocked
				victim.Position = board.LockedZone(victim.Team)
				victim.Score = 0
				out.Captured = victim
				r.fire(Event{Type: EventPieceCaptured, PieceID: victim.ID})
			}
		}
		r.recordFinishLocked(p.Team)
	} else {
		// Forced pass: broadcast the attempt so clients stay in sync on
		// whose die was consumed.
		r.fire(Event{Type: EventPieceMoved, PieceID: p.ID, Dice: die})
	}

	// Capture always grants the bonus turn, independent of the die value;
	// a 6 grants one as well. Exactly one of bonus/advance ever happens.
	out.BonusGranted = die == 6 || out.Captured != nil
	return out
}

// HandleMoveFinished is retained for protocol compatibility with clients
// that report the end of their move animation. The authoritative resolver
// has already applied the move, so this is a no-op.
func (r *Room) HandleMoveFinished(name string) {}

// recordFinishLocked appends the team to the podium if all four of its
// pieces are home, then ends the session once only one team remains.
func (r *Room) recordFinishLocked(team board.Team) {
	done := 0
	for _, p := range r.Pieces {
		if p.Team == team && p.Status == models.PieceHome {
			done++
		}
	}
	if done < board.PiecesPerTeam {
		return
	}
	for _, t := range r.FinishedTeams {
		if t == team {
			return
		}
	}
	r.FinishedTeams = append(r.FinishedTeams, team)
	log.Printf("Room %s: team %s finished (place %d).", r.ID, team, len(r.FinishedTeams))

	if len(r.FinishedTeams) >= len(board.SeatedTeams(r.Capacity))-1 {
		r.Over = true
		r.cancelTurnTimerLocked()
		standings := make([]board.Team, len(r.FinishedTeams))
		copy(standings, r.FinishedTeams)
		r.fire(Event{Type: EventStandings, Teams: standings})
	}
}

// RemovePlayer takes a player out of the room (leave and disconnect are
// equivalent). The room's pending timer is cancelled synchronously and
// the turn index is re-clamped rather than trusted. Reports whether the
// room is now empty and should be destroyed.
func (r *Room) RemovePlayer(name string) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	idx := -1
	for i, p := range r.Players {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return len(r.Players) == 0
	}
	r.cancelTurnTimerLocked()
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	if len(r.Players) == 0 {
		return true
	}

	// Invariant repair, not an incidental side effect: the index must
	// land on a seated player.
	wasActive := idx == r.ActiveTurnIndex
	if idx < r.ActiveTurnIndex {
		r.ActiveTurnIndex--
	}
	if r.ActiveTurnIndex >= len(r.Players) || r.ActiveTurnIndex < 0 {
		r.ActiveTurnIndex = 0
	}
	r.fire(Event{Type: EventRoomUpdate, Players: r.rosterLocked()})

	// The leaver's turn state must not carry over to whoever inherits the
	// seat: a stale die or action phase would let them move without
	// rolling, or stall the room with no timer armed.
	if wasActive && r.Started && !r.Over {
		r.LastDice = 0
		r.Phase = PhaseAwaitRoll
		r.fire(Event{Type: EventTurnChanged, To: r.Players[r.ActiveTurnIndex].Name})
	}
	return false
}

// advanceTurnLocked ends the current resolution: bonus keeps the turn with
// the same player, otherwise the next seat (modulo players) is up. Either
// way the room returns to the roll phase.
func (r *Room) advanceTurnLocked(bonus bool) {
	if len(r.Players) == 0 {
		return
	}
	if !bonus {
		r.ActiveTurnIndex = (r.ActiveTurnIndex + 1) % len(r.Players)
	}
	r.LastDice = 0
	r.Phase = PhaseAwaitRoll
	r.fire(Event{
		Type:  EventTurnChanged,
		To:    r.Players[r.ActiveTurnIndex].Name,
		Bonus: bonus,
	})
	if bonus {
		r.armTurnTimerLocked()
	}
}

// forceAdvanceLocked passes the turn exactly as if the player had acted
// and produced nothing: used for dead rolls and idle timeouts.
func (r *Room) forceAdvanceLocked(by string) {
	r.fire(Event{Type: EventTurnSkipped, By: by})
	r.advanceTurnLocked(false)
}

// armTurnTimerLocked schedules the idle-turn deadline for the player
// currently due to act. Arming invalidates and replaces any previous
// timer for this room, so at most one can ever fire.
func (r *Room) armTurnTimerLocked() {
	if r.TurnTimeout <= 0 || len(r.Players) == 0 {
		return
	}
	r.timerSeq++
	seq := r.timerSeq
	if r.turnTimer != nil {
		r.turnTimer.Stop()
	}
	due := r.Players[r.ActiveTurnIndex].Name
	r.turnTimer = time.AfterFunc(r.TurnTimeout, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if seq != r.timerSeq || !r.Started || r.Over {
			return // stale token, a later action superseded this timer
		}
		if len(r.Players) == 0 || r.Players[r.ActiveTurnIndex].Name != due {
			return
		}
		log.Printf("Room %s: player %s idled past the turn deadline.", r.ID, due)
		r.forceAdvanceLocked(due)
	})
}

// cancelTurnTimerLocked invalidates the pending deadline token first, then
// stops the timer. Every state-mutating operation calls this before doing
// anything else with the turn.
func (r *Room) cancelTurnTimerLocked() {
	r.timerSeq++
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

// CurrentPlayer returns the player due to act, if the room has started.
func (r *Room) CurrentPlayer() (models.Player, bool) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if !r.Started || len(r.Players) == 0 {
		return models.Player{}, false
	}
	return *r.Players[r.ActiveTurnIndex], true
}

// Roster returns a copy of the seated players in turn order.
func (r *Room) Roster() []models.Player {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.rosterLocked()
}

// PieceSnapshot returns a copy of every piece's current state.
func (r *Room) PieceSnapshot() []models.Piece {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	out := make([]models.Piece, 0, len(r.Pieces))
	for _, p := range r.Pieces {
		out = append(out, *p)
	}
	return out
}

// FinishedOrder returns the podium so far.
func (r *Room) FinishedOrder() []board.Team {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	out := make([]board.Team, len(r.FinishedTeams))
	copy(out, r.FinishedTeams)
	return out
}

func (r *Room) rosterLocked() []models.Player {
	roster := make([]models.Player, 0, len(r.Players))
	for _, p := range r.Players {
		roster = append(roster, *p)
	}
	return roster
}

func (r *Room) isActorLocked(name string) bool {
	return len(r.Players) > r.ActiveTurnIndex && r.Players[r.ActiveTurnIndex].Name == name
}

func (r *Room) pieceLocked(id string) *models.Piece {
	for _, p := range r.Pieces {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) teamHasActivePieceLocked(team board.Team) bool {
	for _, p := range r.Pieces {
		if p.Team == team && p.Status == models.PieceActive {
			return true
		}
	}
	return false
}

// opponentAtLocked finds an opposing active piece on the given tile.
// At most one capture happens per move, so the first match wins.
func (r *Room) opponentAtLocked(team board.Team, tile string) *models.Piece {
	for _, p := range r.Pieces {
		if p.Team != team && p.Status == models.PieceActive && p.Position == tile {
			return p
		}
	}
	return nil
}

func (r *Room) fire(ev Event) {
	if r.BroadcastFn != nil {
		r.BroadcastFn(ev)
	}
}
