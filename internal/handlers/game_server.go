package handlers

import (
	"sync"

	"github.com/google/uuid"

	"github.com/arijit-sen/ludo/internal/game"
	"github.com/arijit-sen/ludo/internal/presence"
)

// GameServer owns the session registry and the live websocket connections
// of every seated player, keyed by display name. The engine broadcasts
// through closures registered here; it never sees a connection.
type GameServer struct {
	Registry *game.Registry
	Presence *presence.Tracker // may be nil when Redis is unavailable

	mu      sync.Mutex
	members map[uuid.UUID]map[string]*playerConn
}

func NewGameServer(reg *game.Registry, pres *presence.Tracker) *GameServer {
	return &GameServer{
		Registry: reg,
		Presence: pres,
		members:  make(map[uuid.UUID]map[string]*playerConn),
	}
}

// addMember attaches a connection to a room before the join broadcast
// fires, so the joining player receives their own PLAYER_JOINED.
func (gs *GameServer) addMember(roomID uuid.UUID, conn *playerConn) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	m, ok := gs.members[roomID]
	if !ok {
		m = make(map[string]*playerConn)
		gs.members[roomID] = m
	}
	m[conn.name] = conn
}

func (gs *GameServer) removeMember(roomID uuid.UUID, name string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if m, ok := gs.members[roomID]; ok {
		delete(m, name)
		if len(m) == 0 {
			delete(gs.members, roomID)
		}
	}
}

// broadcastFunc builds the room's BroadcastFn. It only touches the member
// map and per-connection channels, never the room itself; the room stays
// locked while events fire.
func (gs *GameServer) broadcastFunc(roomID uuid.UUID) game.BroadcastFunc {
	return func(ev game.Event) {
		gs.mu.Lock()
		conns := make([]*playerConn, 0, len(gs.members[roomID]))
		for _, c := range gs.members[roomID] {
			conns = append(conns, c)
		}
		gs.mu.Unlock()
		for _, c := range conns {
			c.send(ev)
		}
	}
}
