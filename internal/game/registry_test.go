package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateValidatesCapacity(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.FindOrCreateOpenRoom(1)
	assert.ErrorIs(t, err, ErrBadCapacity)
	_, err = reg.FindOrCreateOpenRoom(5)
	assert.ErrorIs(t, err, ErrBadCapacity)
	assert.Equal(t, 0, reg.RoomCount())
}

func TestFindOrCreateReusesOpenRoom(t *testing.T) {
	reg := NewRegistry()
	first, err := reg.FindOrCreateOpenRoom(2)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.RoomCount())

	second, err := reg.FindOrCreateOpenRoom(2)
	require.NoError(t, err)
	assert.Equal(t, first, second, "an open seat means no new room")
	assert.Equal(t, 1, reg.RoomCount())
}

func TestFullRoomSpawnsNewOne(t *testing.T) {
	reg := NewRegistry()
	id, err := reg.FindOrCreateOpenRoom(2)
	require.NoError(t, err)
	disableTimer(t, reg, id)

	_, err = reg.Join(id, "alice")
	require.NoError(t, err)
	_, err = reg.Join(id, "bob")
	require.NoError(t, err)

	next, err := reg.FindOrCreateOpenRoom(2)
	require.NoError(t, err)
	assert.NotEqual(t, id, next)
	assert.Equal(t, 2, reg.RoomCount())
}

func TestJoinErrors(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Join(uuid.New(), "alice")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	id, err := reg.FindOrCreateOpenRoom(2)
	require.NoError(t, err)
	disableTimer(t, reg, id)
	_, err = reg.Join(id, "alice")
	require.NoError(t, err)
	_, err = reg.Join(id, "bob")
	require.NoError(t, err)
	_, err = reg.Join(id, "carol")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestJoinRejectsAlreadySeatedPlayer(t *testing.T) {
	reg := NewRegistry()
	first, err := reg.FindOrCreateOpenRoom(3)
	require.NoError(t, err)
	disableTimer(t, reg, first)

	_, err = reg.Join(first, "alice")
	require.NoError(t, err)

	// Neither the same room nor a fresh one may seat alice twice.
	_, err = reg.Join(first, "alice")
	assert.ErrorIs(t, err, ErrAlreadySeated)

	other := NewRoom(2)
	reg.rooms[other.ID] = other
	_, err = reg.Join(other.ID, "alice")
	assert.ErrorIs(t, err, ErrAlreadySeated)

	// Leaving frees the name for a new seat.
	_, ok := reg.Leave("alice")
	require.True(t, ok)
	_, err = reg.Join(other.ID, "alice")
	assert.NoError(t, err)
}

func TestLocateAndLeave(t *testing.T) {
	reg := NewRegistry()
	id, err := reg.FindOrCreateOpenRoom(2)
	require.NoError(t, err)
	disableTimer(t, reg, id)

	room, err := reg.Join(id, "alice")
	require.NoError(t, err)

	found, ok := reg.Locate("alice")
	require.True(t, ok)
	assert.Same(t, room, found)

	_, ok = reg.Locate("stranger")
	assert.False(t, ok)

	left, ok := reg.Leave("alice")
	require.True(t, ok)
	assert.Equal(t, id, left)
	assert.Equal(t, 0, reg.RoomCount(), "empty rooms are destroyed")

	_, ok = reg.Locate("alice")
	assert.False(t, ok)
	_, ok = reg.Leave("alice")
	assert.False(t, ok)
}

// disableTimer turns off the idle deadline so registry tests never race a
// real timer.
func disableTimer(t *testing.T, reg *Registry, id uuid.UUID) {
	t.Helper()
	room, ok := reg.Get(id)
	require.True(t, ok)
	room.Mu.Lock()
	room.TurnTimeout = 0
	room.Mu.Unlock()
}
