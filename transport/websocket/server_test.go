package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/candyboard-backend/internal/board"
	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
	"github.com/rocketscienceinc/candyboard-backend/internal/repository"
	"github.com/rocketscienceinc/candyboard-backend/internal/service"
)

func TestMaskRoomFor(t *testing.T) {
	room := &entity.Room{
		Code:  "ABC123",
		Phase: entity.PhasePoisonSelection,
		Players: []*entity.Player{
			{ID: "p1", PoisonCandyID: "candy-1", HasSelectedPoison: true},
			{ID: "p2", PoisonCandyID: "candy-2", HasSelectedPoison: true},
		},
	}

	t.Run("Opponent's pick is withheld, own pick kept", func(t *testing.T) {
		masked := maskRoomFor(room, "p1")

		assert.Equal(t, "candy-1", masked.Player("p1").PoisonCandyID)
		assert.Empty(t, masked.Player("p2").PoisonCandyID)
		// the selection flag stays visible so the client can show readiness
		assert.True(t, masked.Player("p2").HasSelectedPoison)
	})

	t.Run("Masking does not touch the authoritative snapshot", func(t *testing.T) {
		_ = maskRoomFor(room, "p1")

		assert.Equal(t, "candy-2", room.Player("p2").PoisonCandyID)
	})

	t.Run("Finished rooms are sent unmasked", func(t *testing.T) {
		finished := *room
		finished.Phase = entity.PhaseFinished

		masked := maskRoomFor(&finished, "p1")

		assert.Equal(t, "candy-2", masked.Player("p2").PoisonCandyID)
	})
}

type nopRecorder struct{}

func (nopRecorder) RecordResult(_ context.Context, _ *entity.Room) error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	roomService := service.NewRoomService(repository.NewMemoryRoomRepository(), board.NewGenerator(rand.New(rand.NewSource(1))))
	gamePlay := service.NewGamePlayService(logger, roomService, nopRecorder{})

	server := New(logger, gamePlay)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.serveConnection(context.Background(), w, r)
	}))
	t.Cleanup(ts.Close)

	return ts
}

func dial(t *testing.T, ts *httptest.Server) *gws.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func send(t *testing.T, conn *gws.Conn, action string, payload *Payload) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(&Message{
		Action:  action,
		Payload: mustMarshalPayload(payload),
	}))
}

func receive(t *testing.T, conn *gws.Conn) (string, *Payload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	var payload Payload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return msg.Action, &payload
}

func TestServer_CreateJoinAndMaskedUpdates(t *testing.T) {
	ts := newTestServer(t)

	hostConn := dial(t, ts)
	guestConn := dial(t, ts)

	// host creates a room
	send(t, hostConn, ActionRoomCreate, &Payload{Player: &entity.Player{ID: "p1", Name: "Alice"}})
	action, payload := receive(t, hostConn)
	require.Equal(t, ActionRoomCreate, action)
	require.Empty(t, payload.Error)
	require.NotNil(t, payload.Room)
	code := payload.Room.Code
	assert.True(t, payload.Room.IsWaiting())

	// guest joins; both sides get the snapshot
	send(t, guestConn, ActionRoomJoin, &Payload{Player: &entity.Player{ID: "p2", Name: "Bob"}, Code: code})

	action, payload = receive(t, guestConn)
	require.Equal(t, ActionRoomJoin, action)
	require.Empty(t, payload.Error)
	assert.True(t, payload.Room.IsPoisonSelection())

	action, payload = receive(t, hostConn)
	require.Equal(t, ActionRoomJoin, action)
	assert.Len(t, payload.Room.Players, 2)

	// guest picks a poison; the host's copy must not reveal it
	send(t, guestConn, ActionRoomPoison, &Payload{Player: &entity.Player{ID: "p2"}, Code: code, CandyID: "candy-7"})

	_, payload = receive(t, guestConn)
	assert.Equal(t, "candy-7", payload.Room.Player("p2").PoisonCandyID)

	_, payload = receive(t, hostConn)
	assert.Empty(t, payload.Room.Player("p2").PoisonCandyID)
	assert.True(t, payload.Room.Player("p2").HasSelectedPoison)
}

func TestServer_JoinUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	conn := dial(t, ts)

	send(t, conn, ActionRoomJoin, &Payload{Player: &entity.Player{ID: "p1", Name: "Bob"}, Code: "ZZZZZZ"})

	action, payload := receive(t, conn)
	assert.Equal(t, ActionRoomJoin, action)
	assert.Contains(t, payload.Error, "room not found")
}

func TestServer_HostLeaveClosesRoomForGuest(t *testing.T) {
	ts := newTestServer(t)

	hostConn := dial(t, ts)
	guestConn := dial(t, ts)

	send(t, hostConn, ActionRoomCreate, &Payload{Player: &entity.Player{ID: "p1", Name: "Alice"}})
	_, payload := receive(t, hostConn)
	code := payload.Room.Code

	send(t, guestConn, ActionRoomJoin, &Payload{Player: &entity.Player{ID: "p2", Name: "Bob"}, Code: code})
	_, _ = receive(t, guestConn)
	_, _ = receive(t, hostConn)

	// host leaves; the guest is told the room is gone
	send(t, hostConn, ActionRoomLeave, &Payload{Player: &entity.Player{ID: "p1"}, Code: code})

	action, payload := receive(t, guestConn)
	assert.Equal(t, ActionRoomClosed, action)
	assert.Equal(t, code, payload.Code)
}
