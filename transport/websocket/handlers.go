package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/candyboard-backend/internal/apperror"
	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

func (that *Server) handleCreateRoom(ctx context.Context, payload *Payload, cl *client) error {
	log := that.logger.With("method", "handleCreateRoom")

	if payload.Player == nil || payload.Player.Name == "" {
		return that.sendError(cl, ActionRoomCreate, "player name is required")
	}

	room, err := that.session.CreateRoom(ctx, payload.Player.ID, payload.Player.Name)
	if err != nil {
		log.Error("failed to create room", "error", err)
		return that.sendError(cl, ActionRoomCreate, "failed to create room")
	}

	host := room.Host()
	that.register(host.ID, cl)

	log.Info("room created", "roomCode", room.Code, "hostID", host.ID)

	return cl.send(&Message{
		Action:  ActionRoomCreate,
		Payload: mustMarshalPayload(&Payload{Player: host, Room: maskRoomFor(room, host.ID)}),
	})
}

func (that *Server) handleJoinRoom(ctx context.Context, payload *Payload, cl *client) error {
	log := that.logger.With("method", "handleJoinRoom")

	if payload.Player == nil || payload.Player.Name == "" {
		return that.sendError(cl, ActionRoomJoin, "player name is required")
	}
	if payload.Code == "" {
		return that.sendError(cl, ActionRoomJoin, "room code is required")
	}

	room, err := that.session.JoinRoom(ctx, payload.Player.ID, payload.Player.Name, payload.Code)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return that.sendError(cl, ActionRoomJoin, "room not found, check the room code")
	}
	if errors.Is(err, apperror.ErrRoomFull) {
		return that.sendError(cl, ActionRoomJoin, "room is full, maximum 2 players allowed")
	}
	if err != nil {
		log.Error("failed to join room", "roomCode", payload.Code, "error", err)
		return that.sendError(cl, ActionRoomJoin, "failed to join room")
	}

	// the guest is the most recently seated non-host player matching
	// the request; on rejoin it is the already seated entry
	guest := room.Player(payload.Player.ID)
	if guest == nil {
		for _, player := range room.Players {
			if !player.IsHost {
				guest = player
			}
		}
	}

	that.register(guest.ID, cl)

	log.Info("player joined room", "roomCode", room.Code, "playerID", guest.ID)

	that.broadcastRoom(room, ActionRoomJoin)

	return nil
}

func (that *Server) handleSelectPoison(ctx context.Context, payload *Payload, cl *client) error {
	log := that.logger.With("method", "handleSelectPoison")

	if payload.Player == nil || payload.Code == "" || payload.CandyID == "" {
		return that.sendError(cl, ActionRoomPoison, "player, code and candy_id are required")
	}

	room, err := that.session.SelectPoison(ctx, payload.Code, payload.Player.ID, payload.CandyID)
	if err != nil {
		log.Error("failed to select poison", "roomCode", payload.Code, "error", err)
		return that.sendError(cl, ActionRoomPoison, "failed to select poison")
	}

	that.register(payload.Player.ID, cl)

	that.broadcastRoom(room, ActionRoomPoison)

	return nil
}

func (that *Server) handleEatCandy(ctx context.Context, payload *Payload, cl *client) error {
	log := that.logger.With("method", "handleEatCandy")

	if payload.Player == nil || payload.Code == "" || payload.CandyID == "" {
		return that.sendError(cl, ActionRoomEat, "player, code and candy_id are required")
	}

	room, err := that.session.EatCandy(ctx, payload.Code, payload.Player.ID, payload.CandyID)
	if err != nil {
		log.Error("failed to eat candy", "roomCode", payload.Code, "error", err)
		return that.sendError(cl, ActionRoomEat, "failed to eat candy")
	}

	that.register(payload.Player.ID, cl)

	that.broadcastRoom(room, ActionRoomEat)

	return nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, payload *Payload, cl *client) error {
	log := that.logger.With("method", "handleLeaveRoom")

	if payload.Player == nil || payload.Code == "" {
		return that.sendError(cl, ActionRoomLeave, "player and code are required")
	}

	room, destroyed, err := that.session.LeaveRoom(ctx, payload.Code, payload.Player.ID)
	if err != nil {
		log.Error("failed to leave room", "roomCode", payload.Code, "error", err)
		return that.sendError(cl, ActionRoomLeave, "failed to leave room")
	}

	if room == nil {
		return nil
	}

	if destroyed {
		log.Info("room destroyed", "roomCode", room.Code)

		// tell everyone still seated that the room is gone
		for _, player := range room.Players {
			if player.ID == payload.Player.ID {
				continue
			}

			if conn, ok := that.connection(player.ID); ok {
				_ = conn.send(&Message{
					Action:  ActionRoomClosed,
					Payload: mustMarshalPayload(&Payload{Code: room.Code}),
				})
			}
		}

		return nil
	}

	that.broadcastRoom(room, ActionRoomUpdate)

	return nil
}

// broadcastRoom - pushes the snapshot to every seated player with a
// live connection, masking each copy for its recipient.
func (that *Server) broadcastRoom(room *entity.Room, action string) {
	log := that.logger.With("method", "broadcastRoom", "roomCode", room.Code)

	for _, player := range room.Players {
		conn, ok := that.connection(player.ID)
		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		msg := &Message{
			Action:  action,
			Payload: mustMarshalPayload(&Payload{Player: player, Room: maskRoomFor(room, player.ID)}),
		}

		if err := conn.send(msg); err != nil {
			log.Error("failed to send room update", "playerID", player.ID, "error", err)
		}
	}
}

// maskRoomFor - copies the snapshot and withholds the opponent's poison
// pick from it. The full state stays server-side; once the game is
// finished there is nothing left to hide.
func maskRoomFor(room *entity.Room, playerID string) *entity.Room {
	if room.IsFinished() {
		return room
	}

	masked := *room
	masked.Players = make([]*entity.Player, len(room.Players))

	for i, player := range room.Players {
		copied := *player
		if copied.ID != playerID {
			copied.PoisonCandyID = ""
		}
		masked.Players[i] = &copied
	}

	return &masked
}

func (that *Server) sendError(cl *client, action, message string) error {
	if err := cl.send(&Message{
		Action:  action,
		Payload: mustMarshalPayload(&Payload{Error: message}),
	}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
