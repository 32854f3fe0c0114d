package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

// SessionUseCase is the operation set transports program against. Each
// call maps to exactly one room transition; failures other than
// ErrRoomNotFound and ErrRoomFull do not exist at this level, requests
// the rules ignore simply return the unchanged snapshot.
type SessionUseCase interface {
	CreateRoom(ctx context.Context, playerID, playerName string) (*entity.Room, error)
	JoinRoom(ctx context.Context, playerID, playerName, code string) (*entity.Room, error)

	SelectPoison(ctx context.Context, code, playerID, candyID string) (*entity.Room, error)
	EatCandy(ctx context.Context, code, playerID, candyID string) (*entity.Room, error)

	LeaveRoom(ctx context.Context, code, playerID string) (*entity.Room, bool, error)

	PlayerResults(ctx context.Context, playerID string) ([]*entity.GameResult, error)
}

type gamePlayService interface {
	CreateRoom(ctx context.Context, playerID, playerName string) (*entity.Room, error)
	JoinRoom(ctx context.Context, playerID, playerName, code string) (*entity.Room, error)
	SelectPoison(ctx context.Context, code, playerID, candyID string) (*entity.Room, error)
	EatCandy(ctx context.Context, code, playerID, candyID string) (*entity.Room, error)
	LeaveRoom(ctx context.Context, code, playerID string) (*entity.Room, bool, error)
}

type resultService interface {
	PlayerResults(ctx context.Context, playerID string) ([]*entity.GameResult, error)
}

type sessionUseCase struct {
	gamePlayService gamePlayService
	resultService   resultService
}

func NewSessionUseCase(gamePlayService gamePlayService, resultService resultService) SessionUseCase {
	return &sessionUseCase{
		gamePlayService: gamePlayService,
		resultService:   resultService,
	}
}

func (that *sessionUseCase) CreateRoom(ctx context.Context, playerID, playerName string) (*entity.Room, error) {
	room, err := that.gamePlayService.CreateRoom(ctx, playerID, playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

func (that *sessionUseCase) JoinRoom(ctx context.Context, playerID, playerName, code string) (*entity.Room, error) {
	room, err := that.gamePlayService.JoinRoom(ctx, playerID, playerName, code)
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	return room, nil
}

func (that *sessionUseCase) SelectPoison(ctx context.Context, code, playerID, candyID string) (*entity.Room, error) {
	room, err := that.gamePlayService.SelectPoison(ctx, code, playerID, candyID)
	if err != nil {
		return nil, fmt.Errorf("failed to select poison: %w", err)
	}

	return room, nil
}

func (that *sessionUseCase) EatCandy(ctx context.Context, code, playerID, candyID string) (*entity.Room, error) {
	room, err := that.gamePlayService.EatCandy(ctx, code, playerID, candyID)
	if err != nil {
		return nil, fmt.Errorf("failed to eat candy: %w", err)
	}

	return room, nil
}

func (that *sessionUseCase) LeaveRoom(ctx context.Context, code, playerID string) (*entity.Room, bool, error) {
	room, destroyed, err := that.gamePlayService.LeaveRoom(ctx, code, playerID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to leave room: %w", err)
	}

	return room, destroyed, nil
}

func (that *sessionUseCase) PlayerResults(ctx context.Context, playerID string) ([]*entity.GameResult, error) {
	results, err := that.resultService.PlayerResults(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player results: %w", err)
	}

	return results, nil
}
