package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAuthTokenSources(t *testing.T) {
	r := httptest.NewRequest("GET", "/game/ws", nil)
	assert.Empty(t, extractAuthToken(r))

	r = httptest.NewRequest("GET", "/game/ws", nil)
	r.Header.Set("Cookie", "auth_token=tok-from-cookie")
	assert.Equal(t, "tok-from-cookie", extractAuthToken(r))

	r = httptest.NewRequest("GET", "/game/ws", nil)
	r.Header.Set("Authorization", "Bearer tok-from-header")
	assert.Equal(t, "tok-from-header", extractAuthToken(r))

	// The cookie wins when both are present.
	r = httptest.NewRequest("GET", "/game/ws", nil)
	r.Header.Set("Cookie", "auth_token=cookie")
	r.Header.Set("Authorization", "Bearer header")
	assert.Equal(t, "cookie", extractAuthToken(r))
}

func TestGameMessageDecoding(t *testing.T) {
	var msg GameMessage
	raw := `{"type":"JOIN_ROOM","roomId":"abc"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	assert.Equal(t, MsgJoinRoom, msg.Type)
	assert.Equal(t, "abc", msg.RoomID)

	msg = GameMessage{}
	raw = `{"type":"MOVE_PIECE","id":"blue2"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	assert.Equal(t, MsgMovePiece, msg.Type)
	assert.Equal(t, "blue2", msg.PieceID)

	msg = GameMessage{}
	raw = `{"type":"CREATE_OR_FIND_ROOM","playerCount":4}`
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	assert.Equal(t, 4, msg.PlayerCount)
}

func TestJoinResultShape(t *testing.T) {
	res := joinResult(true, "")
	assert.Equal(t, "JOIN_RESULT", res["type"])
	assert.Equal(t, true, res["success"])
	_, hasMsg := res["message"]
	assert.False(t, hasMsg)

	res = joinResult(false, "room is full")
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "room is full", res["message"])
}
