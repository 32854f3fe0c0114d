package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/candyboard-backend/internal/apperror"
	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

var errStorageDown = errors.New("storage down")

type fakeGamePlay struct {
	room      *entity.Room
	destroyed bool
	err       error

	lastCode    string
	lastPlayer  string
	lastCandyID string
}

func (that *fakeGamePlay) CreateRoom(_ context.Context, playerID, _ string) (*entity.Room, error) {
	that.lastPlayer = playerID
	return that.room, that.err
}

func (that *fakeGamePlay) JoinRoom(_ context.Context, playerID, _, code string) (*entity.Room, error) {
	that.lastPlayer, that.lastCode = playerID, code
	return that.room, that.err
}

func (that *fakeGamePlay) SelectPoison(_ context.Context, code, playerID, candyID string) (*entity.Room, error) {
	that.lastCode, that.lastPlayer, that.lastCandyID = code, playerID, candyID
	return that.room, that.err
}

func (that *fakeGamePlay) EatCandy(_ context.Context, code, playerID, candyID string) (*entity.Room, error) {
	that.lastCode, that.lastPlayer, that.lastCandyID = code, playerID, candyID
	return that.room, that.err
}

func (that *fakeGamePlay) LeaveRoom(_ context.Context, code, playerID string) (*entity.Room, bool, error) {
	that.lastCode, that.lastPlayer = code, playerID
	return that.room, that.destroyed, that.err
}

type fakeResults struct {
	results []*entity.GameResult
	err     error
}

func (that *fakeResults) PlayerResults(_ context.Context, _ string) ([]*entity.GameResult, error) {
	return that.results, that.err
}

func TestSessionUseCase_Delegation(t *testing.T) {
	ctx := context.Background()

	room := &entity.Room{ID: "room-1", Code: "ABC123", Phase: entity.PhaseWaiting}

	t.Run("EatCandy passes arguments through and returns the snapshot", func(t *testing.T) {
		gamePlay := &fakeGamePlay{room: room}
		session := NewSessionUseCase(gamePlay, &fakeResults{})

		got, err := session.EatCandy(ctx, "ABC123", "p1", "candy-3")

		require.NoError(t, err)
		assert.Equal(t, room, got)
		assert.Equal(t, "ABC123", gamePlay.lastCode)
		assert.Equal(t, "p1", gamePlay.lastPlayer)
		assert.Equal(t, "candy-3", gamePlay.lastCandyID)
	})

	t.Run("JoinRoom keeps the sentinel error visible through wrapping", func(t *testing.T) {
		gamePlay := &fakeGamePlay{err: apperror.ErrRoomFull}
		session := NewSessionUseCase(gamePlay, &fakeResults{})

		_, err := session.JoinRoom(ctx, "p2", "Bob", "ABC123")

		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrRoomFull)
	})

	t.Run("LeaveRoom reports room destruction", func(t *testing.T) {
		gamePlay := &fakeGamePlay{room: room, destroyed: true}
		session := NewSessionUseCase(gamePlay, &fakeResults{})

		last, destroyed, err := session.LeaveRoom(ctx, "ABC123", "p1")

		require.NoError(t, err)
		assert.True(t, destroyed)
		assert.Equal(t, room, last)
	})

	t.Run("PlayerResults wraps repository failures", func(t *testing.T) {
		session := NewSessionUseCase(&fakeGamePlay{}, &fakeResults{err: errStorageDown})

		_, err := session.PlayerResults(ctx, "p1")

		require.Error(t, err)
		assert.ErrorIs(t, err, errStorageDown)
	})

	t.Run("PlayerResults returns the archive", func(t *testing.T) {
		archive := []*entity.GameResult{{RoomID: "room-1", WinnerID: "p1", LoserID: "p2"}}
		session := NewSessionUseCase(&fakeGamePlay{}, &fakeResults{results: archive})

		got, err := session.PlayerResults(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, archive, got)
	})
}
