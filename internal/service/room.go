package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/candyboard-backend/internal/board"
	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
	"github.com/rocketscienceinc/candyboard-backend/internal/pkg"
)

// codeAttempts bounds the resampling loop for a free room code. With a
// 36^6 code space this only trips when the store itself is broken.
const codeAttempts = 100

type RoomService interface {
	CreateRoom(ctx context.Context, host *entity.Player) (*entity.Room, error)
	GetRoomByCode(ctx context.Context, code string) (*entity.Room, error)
	UpdateRoom(ctx context.Context, room *entity.Room) error
	DeleteRoom(ctx context.Context, code string) error

	NewBoard() []*entity.Candy
}

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	DeleteByCode(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
}

type roomService struct {
	roomRepo roomRepo
	boards   *board.Generator
}

func NewRoomService(roomRepo roomRepo, boards *board.Generator) RoomService {
	return &roomService{
		roomRepo: roomRepo,
		boards:   boards,
	}
}

// CreateRoom - builds a waiting room for the host with a fresh board and
// a room code that does not collide with any live room.
func (that *roomService) CreateRoom(ctx context.Context, host *entity.Player) (*entity.Room, error) {
	code, err := that.freeRoomCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate room code: %w", err)
	}

	room := entity.NewRoom(pkg.NewRoomID(), code, host, that.boards.Generate())

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room from storage: %w", err)
	}

	return room, nil
}

func (that *roomService) freeRoomCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := pkg.GenerateRoomCode()

		exists, err := that.roomRepo.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check room code: %w", err)
		}

		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("no free room code after %d attempts", codeAttempts)
}

func (that *roomService) GetRoomByCode(ctx context.Context, code string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve room from storage: %w", err)
	}

	return room, nil
}

func (that *roomService) UpdateRoom(ctx context.Context, room *entity.Room) error {
	if err := that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

func (that *roomService) DeleteRoom(ctx context.Context, code string) error {
	if err := that.roomRepo.DeleteByCode(ctx, code); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

// NewBoard - deals a fresh candy board, used when a room regresses to
// the waiting phase after its guest left.
func (that *roomService) NewBoard() []*entity.Candy {
	return that.boards.Generate()
}
