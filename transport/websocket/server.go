package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

type sessionUseCase interface {
	CreateRoom(ctx context.Context, playerID, playerName string) (*entity.Room, error)
	JoinRoom(ctx context.Context, playerID, playerName, code string) (*entity.Room, error)
	SelectPoison(ctx context.Context, code, playerID, candyID string) (*entity.Room, error)
	EatCandy(ctx context.Context, code, playerID, candyID string) (*entity.Room, error)
	LeaveRoom(ctx context.Context, code, playerID string) (*entity.Room, bool, error)
}

// client wraps a connection with a write lock; gorilla connections do
// not allow concurrent writers.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *client) send(msg *Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger  *slog.Logger
	session sessionUseCase

	upgrader websocket.Upgrader

	connectionsMutex sync.RWMutex
	connections      map[string]*client

	handlers map[string]func(ctx context.Context, payload *Payload, cl *client) error
}

func New(logger *slog.Logger, session sessionUseCase) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		session: session,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},

		connections: make(map[string]*client),
		handlers:    make(map[string]func(context.Context, *Payload, *client) error),
	}

	server.handlers[ActionRoomCreate] = server.handleCreateRoom
	server.handlers[ActionRoomJoin] = server.handleJoinRoom
	server.handlers[ActionRoomPoison] = server.handleSelectPoison
	server.handlers[ActionRoomEat] = server.handleEatCandy
	server.handlers[ActionRoomLeave] = server.handleLeaveRoom

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx ends.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	cl := &client{conn: conn}
	defer func() {
		that.unregister(cl)
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established")

	that.handleMessages(ctx, cl)
}

// handleMessages - processes messages from the client until the
// connection drops.
func (that *Server) handleMessages(ctx context.Context, cl *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := cl.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			_ = that.sendError(cl, message.Action, "unknown action")
			continue
		}

		var payload Payload
		if message.Payload != nil {
			if err := json.Unmarshal(message.Payload, &payload); err != nil {
				log.Error("failed to unmarshal payload", "action", message.Action, "error", err)
				_ = that.sendError(cl, message.Action, "malformed payload")
				continue
			}
		}

		if err := handler(ctx, &payload, cl); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// register - binds a player id to a live connection so room updates can
// be pushed to it.
func (that *Server) register(playerID string, cl *client) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.connections[playerID] = cl
}

func (that *Server) unregister(cl *client) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for playerID, connected := range that.connections {
		if connected == cl {
			delete(that.connections, playerID)
			return
		}
	}
}

func (that *Server) connection(playerID string) (*client, bool) {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	cl, ok := that.connections[playerID]

	return cl, ok
}
