package repository

import (
	"context"
	"time"

	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/infra"

	"github.com/google/uuid"
)

const roomColumns = `id, number, size, capacity, description, created_at, updated_at`

const (
	insertRoomSQL = `INSERT INTO rooms (` + roomColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updateRoomSQL = `UPDATE rooms
SET description = $2, updated_at = $3
WHERE id = $1`

	deleteRoomSQL = `DELETE FROM rooms WHERE id = $1`

	findRoomByIDSQL = `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	lockRoomSQL = findRoomByIDSQL + ` FOR UPDATE`

	listRoomsSQL = `SELECT ` + roomColumns + ` FROM rooms ORDER BY number`
)

type RoomRepository struct {
	db DBTX
}

func NewRoomRepository(db DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	_, err := r.db.Exec(ctx, insertRoomSQL,
		rm.ID(),
		rm.Number(),
		rm.Size().String(),
		rm.Capacity(),
		rm.Description(),
		rm.CreatedAt(),
		rm.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	tag, err := r.db.Exec(ctx, updateRoomSQL, rm.ID(), rm.Description(), rm.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteRoomSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rm, err := scanRoom(r.db.QueryRow(ctx, findRoomByIDSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return rm, nil
}

// Lock reads the room and holds its row lock until the surrounding transaction ends.
func (r *RoomRepository) Lock(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rm, err := scanRoom(r.db.QueryRow(ctx, lockRoomSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock room", err)
	}
	return rm, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*room.Room, error) {
	rows, err := r.db.Query(ctx, listRoomsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var rooms []*room.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return rooms, nil
}

func scanRoom(row scanner) (*room.Room, error) {
	var (
		id          uuid.UUID
		number      int
		size        string
		capacity    int
		description string
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &number, &size, &capacity, &description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	parsedSize, err := room.ParseSize(size)
	if err != nil {
		return nil, err
	}

	return room.ReconstructRoom(id, number, parsedSize, capacity, description, createdAt, updatedAt), nil
}
