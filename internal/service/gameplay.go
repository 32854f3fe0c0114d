package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/candyboard-backend/internal/apperror"
	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
	"github.com/rocketscienceinc/candyboard-backend/internal/pkg"
)

// GamePlayService drives the per-room state machine. Every operation is
// one read-modify-write cycle against the room store, serialized per
// room so that two concurrent calls can never act on a stale snapshot.
// Rooms never contend with each other.
type GamePlayService interface {
	CreateRoom(ctx context.Context, playerID, playerName string) (*entity.Room, error)
	JoinRoom(ctx context.Context, playerID, playerName, code string) (*entity.Room, error)

	SelectPoison(ctx context.Context, code, playerID, candyID string) (*entity.Room, error)
	EatCandy(ctx context.Context, code, playerID, candyID string) (*entity.Room, error)

	// LeaveRoom reports destroyed=true when the room was deleted; the
	// returned snapshot is then the state just before deletion, so
	// callers can still notify the remaining player.
	LeaveRoom(ctx context.Context, code, playerID string) (room *entity.Room, destroyed bool, err error)
}

type resultRecorder interface {
	RecordResult(ctx context.Context, room *entity.Room) error
}

type gamePlayService struct {
	logger *slog.Logger

	roomService RoomService
	results     resultRecorder

	locks roomLocks
}

func NewGamePlayService(logger *slog.Logger, roomService RoomService, results resultRecorder) GamePlayService {
	return &gamePlayService{
		logger:      logger,
		roomService: roomService,
		results:     results,
	}
}

func (that *gamePlayService) CreateRoom(ctx context.Context, playerID, playerName string) (*entity.Room, error) {
	if playerID == "" {
		playerID = pkg.NewPlayerID()
	}

	host := &entity.Player{
		ID:     playerID,
		Name:   playerName,
		IsHost: true,
	}

	room, err := that.roomService.CreateRoom(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

func (that *gamePlayService) JoinRoom(ctx context.Context, playerID, playerName, code string) (*entity.Room, error) {
	code = normalizeCode(code)

	unlock := that.locks.lock(code)
	defer unlock()

	room, err := that.roomService.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	// rejoin is idempotent
	if playerID != "" && room.HasPlayer(playerID) {
		return room, nil
	}

	if room.IsFull() {
		return nil, fmt.Errorf("%w: room code %s", apperror.ErrRoomFull, code)
	}

	if playerID == "" {
		playerID = pkg.NewPlayerID()
	}

	room.AddGuest(&entity.Player{
		ID:   playerID,
		Name: playerName,
	})

	if err = that.roomService.UpdateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

func (that *gamePlayService) SelectPoison(ctx context.Context, code, playerID, candyID string) (*entity.Room, error) {
	code = normalizeCode(code)

	unlock := that.locks.lock(code)
	defer unlock()

	room, err := that.roomService.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	if !room.SelectPoison(playerID, candyID) {
		return room, nil
	}

	if err = that.roomService.UpdateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

func (that *gamePlayService) EatCandy(ctx context.Context, code, playerID, candyID string) (*entity.Room, error) {
	code = normalizeCode(code)

	unlock := that.locks.lock(code)
	defer unlock()

	room, err := that.roomService.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	if !room.EatCandy(playerID, candyID) {
		return room, nil
	}

	if err = that.roomService.UpdateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	if room.IsFinished() {
		that.archiveResult(ctx, room)
	}

	return room, nil
}

// archiveResult writes the finished game to the match history. A failed
// archive must not fail the turn that ended the game.
func (that *gamePlayService) archiveResult(ctx context.Context, room *entity.Room) {
	log := that.logger.With("method", "archiveResult", "roomCode", room.Code)

	if err := that.results.RecordResult(ctx, room); err != nil {
		log.Error("failed to archive game result", "error", err)
		return
	}

	log.Info("game result archived", "winner", room.Winner, "loser", room.Loser)
}

func (that *gamePlayService) LeaveRoom(ctx context.Context, code, playerID string) (*entity.Room, bool, error) {
	code = normalizeCode(code)

	unlock := that.locks.lock(code)
	defer unlock()

	room, err := that.roomService.GetRoomByCode(ctx, code)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		// leaving a room that is already gone is not an error
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get room by code: %w", err)
	}

	player := room.Player(playerID)
	if player == nil {
		return room, false, nil
	}

	if player.IsHost || len(room.Players) == 1 {
		if err = that.roomService.DeleteRoom(ctx, code); err != nil {
			return nil, false, fmt.Errorf("failed to delete room: %w", err)
		}

		that.locks.forget(code)

		return room, true, nil
	}

	room.RemovePlayer(playerID)
	room.ResetForNewGuest(that.roomService.NewBoard())

	if err = that.roomService.UpdateRoom(ctx, room); err != nil {
		return nil, false, fmt.Errorf("failed to update room: %w", err)
	}

	return room, false, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// roomLocks hands out one mutex per room code. The zero value is ready
// to use.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock - acquires the exclusive critical section for a room and returns
// the release func. Hold time is bounded by one in-memory mutation plus
// a store round-trip.
func (that *roomLocks) lock(code string) func() {
	that.mu.Lock()
	if that.locks == nil {
		that.locks = make(map[string]*sync.Mutex)
	}

	lock, ok := that.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[code] = lock
	}
	that.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}

// forget - drops the lock entry for a destroyed room. The caller must
// still hold the lock; a racing waiter will acquire the stale mutex,
// find the room gone and treat the call as a no-op.
func (that *roomLocks) forget(code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.locks, code)
}
