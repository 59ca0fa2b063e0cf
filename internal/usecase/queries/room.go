package queries

import (
	"context"

	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=room.go -destination=../../mock/queries/room_mock.go -package=queriesmock
type RoomQueries interface {
	List(ctx context.Context) ([]*room.Room, error)
	Get(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type roomQueriesImpl struct {
	rooms shared.RoomRepository
}

func NewRoomQueries(rooms shared.RoomRepository) RoomQueries {
	return &roomQueriesImpl{rooms: rooms}
}

func (q *roomQueriesImpl) List(ctx context.Context) ([]*room.Room, error) {
	rooms, err := q.rooms.List(ctx)
	if err != nil {
		return nil, mapRepoErr(err, ErrRoomNotFound)
	}
	return rooms, nil
}

func (q *roomQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	r, err := q.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrRoomNotFound)
	}
	return r, nil
}
