package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GameMessage is the inbound client envelope. Only the fields relevant to
// each message type are populated.
type GameMessage struct {
	Type        string `json:"type"`
	PlayerCount int    `json:"playerCount,omitempty"` // CREATE_OR_FIND_ROOM
	RoomID      string `json:"roomId,omitempty"`      // JOIN_ROOM
	PieceID     string `json:"id,omitempty"`          // UNLOCK_PIECE, MOVE_PIECE, PIECE_CUT
}

// Inbound message types. FINISHED_MOVE and PIECE_CUT exist for protocol
// compatibility: the server resolves moves and captures itself, so both
// are acknowledged and otherwise ignored.
const (
	MsgCreateOrFindRoom = "CREATE_OR_FIND_ROOM"
	MsgJoinRoom         = "JOIN_ROOM"
	MsgRollDice         = "ROLL_DICE"
	MsgUnlockPiece      = "UNLOCK_PIECE"
	MsgMovePiece        = "MOVE_PIECE"
	MsgFinishedMove     = "FINISHED_MOVE"
	MsgPieceCut         = "PIECE_CUT"
)

// GameWSHandler upgrades the connection, resolves the caller's identity
// (JWT cookie or a fresh ephemeral guest), and runs the read loop. One
// connection serves the player's whole session: room discovery, joining,
// and in-game actions all flow over it.
func (gs *GameServer) GameWSHandler(logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := EnsureEphemeralUser(w, r)
		if err != nil {
			http.Error(w, "failed to resolve user", http.StatusInternalServerError)
			return
		}

		ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:       []string{"ludo"},
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Warnf("websocket accept failed: %v", err)
			return
		}
		if ws.Subprotocol() != "ludo" {
			ws.Close(websocket.StatusPolicyViolation, "client must speak the ludo subprotocol")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		conn := newPlayerConn(user.Username, ws, cancel, logger)
		go conn.writePump(ctx)

		if gs.Presence != nil {
			gs.Presence.MarkOnline(ctx, user.Username)
		}
		logger.Infof("player %s connected", user.Username)

		gs.readLoop(ctx, conn, logger)

		// Disconnect and leave are the same operation.
		cancel()
		if roomID, ok := gs.Registry.Leave(conn.name); ok {
			gs.removeMember(roomID, conn.name)
		}
		if gs.Presence != nil {
			gs.Presence.MarkOffline(context.Background(), conn.name)
		}
		ws.Close(websocket.StatusNormalClosure, "closing")
		logger.Infof("player %s disconnected", conn.name)
	}
}

func (gs *GameServer) readLoop(ctx context.Context, conn *playerConn, logger *logrus.Logger) {
	for {
		_, data, err := conn.ws.Read(ctx)
		if err != nil {
			return
		}
		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("conn %s: bad message: %v", conn.name, err)
			continue
		}
		gs.dispatch(conn, msg, logger)
	}
}

func (gs *GameServer) dispatch(conn *playerConn, msg GameMessage, logger *logrus.Logger) {
	switch msg.Type {
	case MsgCreateOrFindRoom:
		roomID, err := gs.Registry.FindOrCreateOpenRoom(msg.PlayerCount)
		if err != nil {
			conn.send(map[string]interface{}{"type": "ROOM_FOUND", "error": err.Error()})
			return
		}
		conn.send(map[string]interface{}{"type": "ROOM_FOUND", "roomId": roomID.String()})

	case MsgJoinRoom:
		roomID, err := uuid.Parse(msg.RoomID)
		if err != nil {
			conn.send(joinResult(false, "invalid room id"))
			return
		}
		// Wire the fanout and register the member first, so the joiner
		// receives their own PLAYER_JOINED fired under the room lock.
		if room, ok := gs.Registry.Get(roomID); ok {
			room.Mu.Lock()
			if room.BroadcastFn == nil {
				room.BroadcastFn = gs.broadcastFunc(roomID)
			}
			room.Mu.Unlock()
		}
		gs.addMember(roomID, conn)
		if _, err := gs.Registry.Join(roomID, conn.name); err != nil {
			gs.removeMember(roomID, conn.name)
			conn.send(joinResult(false, err.Error()))
			return
		}
		conn.send(joinResult(true, ""))

	case MsgRollDice:
		if room, ok := gs.Registry.Locate(conn.name); ok {
			room.HandleRoll(conn.name)
		}

	case MsgUnlockPiece:
		if room, ok := gs.Registry.Locate(conn.name); ok {
			room.HandleUnlock(conn.name, msg.PieceID)
		}

	case MsgMovePiece:
		if room, ok := gs.Registry.Locate(conn.name); ok {
			room.HandleMove(conn.name, msg.PieceID)
		}

	case MsgFinishedMove:
		if room, ok := gs.Registry.Locate(conn.name); ok {
			room.HandleMoveFinished(conn.name)
		}

	case MsgPieceCut:
		// Captures are detected server-side during move resolution.

	default:
		logger.Warnf("conn %s: unknown message type %q", conn.name, msg.Type)
	}
}

func joinResult(success bool, message string) map[string]interface{} {
	res := map[string]interface{}{"type": "JOIN_RESULT", "success": success}
	if message != "" {
		res["message"] = message
	}
	return res
}
