package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/candyboard-backend/internal/apperror"
	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

// memoryRoom is an in-process RoomRepository for tests and single-node
// deployments. Snapshots are stored as JSON blobs so that readers never
// share pointers with writers, matching the copy semantics of the Redis
// implementation.
type memoryRoom struct {
	mu    sync.RWMutex
	rooms map[string][]byte
}

func NewMemoryRoomRepository() RoomRepository {
	return &memoryRoom{
		rooms: make(map[string][]byte),
	}
}

func (that *memoryRoom) CreateOrUpdate(_ context.Context, room *entity.Room) error {
	roomJSON, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("could not marshal room: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.rooms[room.Code] = roomJSON

	return nil
}

func (that *memoryRoom) GetByCode(_ context.Context, code string) (*entity.Room, error) {
	that.mu.RLock()
	roomJSON, ok := that.rooms[code]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	var room entity.Room
	if err := json.Unmarshal(roomJSON, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

func (that *memoryRoom) DeleteByCode(_ context.Context, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, code)

	return nil
}

func (that *memoryRoom) Exists(_ context.Context, code string) (bool, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.rooms[code]

	return ok, nil
}
