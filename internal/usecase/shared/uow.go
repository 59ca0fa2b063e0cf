package shared

import (
	"context"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Rooms() RoomRepository
	Users() UserRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByStatus(ctx context.Context, statuses ...booking.Status) ([]*booking.Booking, error)
	FindByPayer(ctx context.Context, payerID uuid.UUID) ([]*booking.Booking, error)
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]*booking.Booking, error)
	FindActiveEndedBefore(ctx context.Context, t time.Time) ([]*booking.Booking, error)
	HasOverlap(ctx context.Context, roomID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (bool, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	Update(ctx context.Context, r *room.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	// Lock: FindByID holding the row lock for the rest of the transaction
	Lock(ctx context.Context, id uuid.UUID) (*room.Room, error)
	List(ctx context.Context) ([]*room.Room, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}
