package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

type ResultService interface {
	RecordResult(ctx context.Context, room *entity.Room) error
	PlayerResults(ctx context.Context, playerID string) ([]*entity.GameResult, error)
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListByPlayer(ctx context.Context, playerID string) ([]*entity.GameResult, error)
}

type resultService struct {
	resultRepo resultRepo
}

func NewResultService(resultRepo resultRepo) ResultService {
	return &resultService{
		resultRepo: resultRepo,
	}
}

// RecordResult - archives a finished room. Winner and loser are set
// together exactly once, on the transition into the finished phase.
func (that *resultService) RecordResult(ctx context.Context, room *entity.Room) error {
	if !room.IsFinished() {
		return fmt.Errorf("room %s is not finished", room.Code)
	}

	result := &entity.GameResult{
		RoomID:     room.ID,
		RoomCode:   room.Code,
		WinnerID:   room.Winner,
		LoserID:    room.Loser,
		FinishedAt: room.LastUpdated,
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		return fmt.Errorf("failed to save game result: %w", err)
	}

	return nil
}

func (that *resultService) PlayerResults(ctx context.Context, playerID string) ([]*entity.GameResult, error) {
	results, err := that.resultRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}

	return results, nil
}
