package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
	"github.com/rocketscienceinc/candyboard-backend/internal/repository/storage"
)

func newResultRepo(t *testing.T) (context.Context, ResultRepository) {
	t.Helper()

	ctx := context.Background()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	require.NoError(t, st.Init(ctx))

	return ctx, NewResultRepository(st.Connection)
}

func TestResultRepository_SaveAndList(t *testing.T) {
	ctx, resultRepo := newResultRepo(t)

	// Given: two archived games involving player p1
	first := &entity.GameResult{
		RoomID: "room-1", RoomCode: "ABC123",
		WinnerID: "p1", LoserID: "p2", FinishedAt: 1000,
	}
	second := &entity.GameResult{
		RoomID: "room-2", RoomCode: "XYZ789",
		WinnerID: "p3", LoserID: "p1", FinishedAt: 2000,
	}

	require.NoError(t, resultRepo.Save(ctx, first))
	require.NoError(t, resultRepo.Save(ctx, second))

	// When: listing results for p1
	results, err := resultRepo.ListByPlayer(ctx, "p1")

	// Then: both games are returned, most recent first
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "room-2", results[0].RoomID)
	assert.Equal(t, "room-1", results[1].RoomID)
}

func TestResultRepository_ListByPlayer_Empty(t *testing.T) {
	ctx, resultRepo := newResultRepo(t)

	// When: listing results for a player with no games
	results, err := resultRepo.ListByPlayer(ctx, "nobody")

	// Then: an empty list and no error
	require.NoError(t, err)
	assert.Empty(t, results)
}
