package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

// Client-initiated actions. The server answers on the same action and
// pushes ActionRoomUpdate / ActionRoomClosed to the other player.
const (
	ActionRoomCreate = "room:create"
	ActionRoomJoin   = "room:join"
	ActionRoomPoison = "room:poison"
	ActionRoomEat    = "room:eat"
	ActionRoomLeave  = "room:leave"

	ActionRoomUpdate = "room:update"
	ActionRoomClosed = "room:closed"
)

// Message is one WebSocket envelope with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player  *entity.Player `json:"player,omitempty"`
	Room    *entity.Room   `json:"room,omitempty"`
	Code    string         `json:"code,omitempty"`
	CandyID string         `json:"candy_id,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func mustMarshalPayload(payload *Payload) json.RawMessage {
	b, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}

	return b
}
