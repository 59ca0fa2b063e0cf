package commands

import (
	"context"
	"log/slog"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/infra"
	"gestion-turnos/internal/pkg/clock"
	"gestion-turnos/internal/pkg/errs"
	"gestion-turnos/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPermissionDenied = errs.New("permission denied")
	ErrRoomNumberTaken  = errs.New("room number already in use")
	ErrRoomHasBookings  = errs.New("room still has bookings")
)

type CreateRoomInput struct {
	Number      int
	Size        room.Size
	Capacity    int
	Description string
}

//go:generate mockgen -source=room.go -destination=../../mock/commands/room_mock.go -package=commandsmock
type RoomCommands interface {
	Create(ctx context.Context, actor booking.Actor, in CreateRoomInput) (*room.Room, error)
	UpdateDescription(ctx context.Context, actor booking.Actor, id uuid.UUID, description string) (*room.Room, error)
	Delete(ctx context.Context, actor booking.Actor, id uuid.UUID) error
}

type roomCommandsImpl struct {
	rooms shared.RoomRepository
	clock clock.Clock
}

func NewRoomCommands(rooms shared.RoomRepository, clock clock.Clock) RoomCommands {
	return &roomCommandsImpl{
		rooms: rooms,
		clock: clock,
	}
}

func (c *roomCommandsImpl) Create(ctx context.Context, actor booking.Actor, in CreateRoomInput) (*room.Room, error) {
	if actor.Role != user.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	r, err := room.NewRoom(in.Number, in.Size, in.Capacity, in.Description, c.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := c.rooms.Create(ctx, r); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrRoomNumberTaken
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Info("room created", "room_id", r.ID(), "number", r.Number(), "size", r.Size().String())
	return r, nil
}

func (c *roomCommandsImpl) UpdateDescription(ctx context.Context, actor booking.Actor, id uuid.UUID, description string) (*room.Room, error) {
	if actor.Role != user.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	current, err := c.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrRoomNotFound)
	}

	updated, err := current.WithDescription(description, c.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := c.rooms.Update(ctx, updated); err != nil {
		return nil, mapRepoErr(err, ErrRoomNotFound)
	}
	return updated, nil
}

func (c *roomCommandsImpl) Delete(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	if actor.Role != user.RoleAdmin {
		return ErrPermissionDenied
	}

	if err := c.rooms.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return ErrRoomHasBookings
		}
		return mapRepoErr(err, ErrRoomNotFound)
	}

	slog.Info("room deleted", "room_id", id)
	return nil
}
