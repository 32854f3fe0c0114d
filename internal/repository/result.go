package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

// ResultRepository archives finished games.
type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListByPlayer(ctx context.Context, playerID string) ([]*entity.GameResult, error)
}

type dbResult struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &dbResult{
		conn: conn,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT INTO game_results (room_id, room_code, winner_id, loser_id, finished_at) VALUES (?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.RoomID, result.RoomCode, result.WinnerID, result.LoserID, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("can't save game result: %w", err)
	}

	return nil
}

func (that *dbResult) ListByPlayer(ctx context.Context, playerID string) ([]*entity.GameResult, error) {
	query := `SELECT room_id, room_code, winner_id, loser_id, finished_at
		FROM game_results
		WHERE winner_id = ? OR loser_id = ?
		ORDER BY finished_at DESC`

	rows, err := that.conn.QueryContext(ctx, query, playerID, playerID)
	if err != nil {
		return nil, fmt.Errorf("can't list game results: %w", err)
	}
	defer rows.Close()

	var results []*entity.GameResult

	for rows.Next() {
		var result entity.GameResult
		if err = rows.Scan(&result.RoomID, &result.RoomCode, &result.WinnerID, &result.LoserID, &result.FinishedAt); err != nil {
			return nil, fmt.Errorf("can't scan game result: %w", err)
		}

		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read game results: %w", err)
	}

	return results, nil
}
