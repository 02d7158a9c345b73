package game

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Typed join failures reported synchronously to the caller so the
// transport can surface a message. Everything else in the engine fails
// silently by policy.
var (
	ErrRoomFull      = errors.New("room is full")
	ErrRoomNotFound  = errors.New("room does not exist")
	ErrBadCapacity   = errors.New("room capacity must be 2, 3 or 4")
	ErrAlreadySeated = errors.New("player is already in a room")
)

// Registry owns every live room and a reverse index from player name to
// room, so each action routes in O(1) without the caller tracking ids.
// It is constructed once per process and passed by reference; nothing
// reaches the maps except through its methods.
type Registry struct {
	mu       sync.Mutex
	rooms    map[uuid.UUID]*Room
	byPlayer map[string]uuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:    make(map[uuid.UUID]*Room),
		byPlayer: make(map[string]uuid.UUID),
	}
}

// FindOrCreateOpenRoom returns the first room with a free seat, creating
// one when none is open.
func (reg *Registry) FindOrCreateOpenRoom(capacity int) (uuid.UUID, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for id, room := range reg.rooms {
		if !room.IsFull() {
			return id, nil
		}
	}
	switch capacity {
	case 2, 3, 4:
	default:
		return uuid.Nil, ErrBadCapacity
	}
	room := NewRoom(capacity)
	reg.rooms[room.ID] = room
	log.Printf("Registry: created room %s (capacity %d).", room.ID, capacity)
	return room.ID, nil
}

// Join seats a player in the given room and indexes them for Locate.
// Room-full and room-missing are typed failures, not faults.
func (reg *Registry) Join(roomID uuid.UUID, name string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	// A second join would orphan the first seat: the reverse index holds
	// one room per name, so Leave could never clean the older one up.
	if _, seated := reg.byPlayer[name]; seated {
		return nil, ErrAlreadySeated
	}
	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if err := room.AddPlayer(name); err != nil {
		return nil, err
	}
	reg.byPlayer[name] = roomID
	return room, nil
}

// Get returns a room by id.
func (reg *Registry) Get(roomID uuid.UUID) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[roomID]
	return room, ok
}

// Locate resolves a player name to their room.
func (reg *Registry) Locate(name string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	id, ok := reg.byPlayer[name]
	if !ok {
		return nil, false
	}
	room, ok := reg.rooms[id]
	return room, ok
}

// Leave removes the player from their room (leave and disconnect are the
// same operation) and destroys the room once its last player is gone.
// Returns the room id the player occupied, if any.
func (reg *Registry) Leave(name string) (uuid.UUID, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	id, ok := reg.byPlayer[name]
	if !ok {
		return uuid.Nil, false
	}
	delete(reg.byPlayer, name)
	room, ok := reg.rooms[id]
	if !ok {
		return uuid.Nil, false
	}
	if empty := room.RemovePlayer(name); empty {
		delete(reg.rooms, id)
		log.Printf("Registry: room %s is empty, deleted.", id)
	}
	return id, true
}

// RoomCount reports how many rooms are live (used by tests and the
// lobby-list endpoint).
func (reg *Registry) RoomCount() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
