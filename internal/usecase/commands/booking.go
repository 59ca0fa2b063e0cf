package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/infra"
	"gestion-turnos/internal/pkg/clock"
	"gestion-turnos/internal/pkg/errs"
	"gestion-turnos/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrRoomNotFound            = errs.New("room not found")
	ErrPayerNotFound           = errs.New("payer not found")
	ErrSlotUnavailable         = errs.New("room already booked for that time")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	RoomID uuid.UUID
	// PayerEmail lets staff book on a client's behalf; empty books for the actor.
	PayerEmail    string
	Start         time.Time
	End           time.Time
	PaymentMethod booking.PaymentMethod
}

type UpdateBookingInput struct {
	// RoomID uuid.Nil keeps the current room
	RoomID        uuid.UUID
	Start         time.Time
	End           time.Time
	PaymentMethod booking.PaymentMethod
}

//go:generate mockgen -source=booking.go -destination=../../mock/commands/booking_mock.go -package=commandsmock
type BookingCommands interface {
	Create(ctx context.Context, actor booking.Actor, in CreateBookingInput) (*booking.Booking, error)
	Update(ctx context.Context, actor booking.Actor, id uuid.UUID, in UpdateBookingInput) (*booking.Booking, error)
	ApplyAction(ctx context.Context, actor booking.Actor, id uuid.UUID, action booking.Action) (*booking.Booking, error)
	Delete(ctx context.Context, actor booking.Actor, id uuid.UUID) error
	FinishElapsed(ctx context.Context, now time.Time) (int, error)
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	bookings  shared.BookingRepository
	factory   *booking.Factory
	prices    booking.PriceCalculator
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookings shared.BookingRepository,
	factory *booking.Factory,
	prices booking.PriceCalculator,
	publisher shared.EventPublisher,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		bookings:  bookings,
		factory:   factory,
		prices:    prices,
		publisher: publisher,
		clock:     clock,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, actor booking.Actor, in CreateBookingInput) (*booking.Booking, error) {
	var created *booking.Booking

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		payer, err := c.resolvePayer(ctx, tx, actor, in.PayerEmail)
		if err != nil {
			return err
		}

		roomEntity, err := tx.Rooms().Lock(ctx, in.RoomID)
		if err != nil {
			return mapRepoErr(err, ErrRoomNotFound)
		}

		b, err := c.factory.CreateBooking(roomEntity, payer, in.Start, in.End, in.PaymentMethod)
		if err != nil {
			return err
		}

		if err := ensureAvailable(ctx, tx, b, nil); err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return mapRepoErr(err, ErrBookingNotFound)
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", created.ID(),
		"room", created.RoomNumber(),
		"status", created.Status().String(),
		"amount", created.Amount())
	c.publish(ctx, shared.EventBookingCreated, created)
	return created, nil
}

func (c *bookingCommandsImpl) Update(ctx context.Context, actor booking.Actor, id uuid.UUID, in UpdateBookingInput) (*booking.Booking, error) {
	var updated *booking.Booking

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return mapRepoErr(err, ErrBookingNotFound)
		}

		roomID := in.RoomID
		if roomID == uuid.Nil {
			roomID = current.Room().ID
		}
		roomEntity, err := tx.Rooms().Lock(ctx, roomID)
		if err != nil {
			return mapRepoErr(err, ErrRoomNotFound)
		}

		changes := booking.Changes{
			Room:          booking.RoomRefOf(roomEntity),
			Start:         in.Start,
			End:           in.End,
			PaymentMethod: in.PaymentMethod,
		}
		next, err := booking.Edit(current, changes, actor, c.prices, c.clock.Now())
		if err != nil {
			return err
		}

		excludeID := next.ID()
		if err := ensureAvailable(ctx, tx, next, &excludeID); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, next); err != nil {
			return mapRepoErr(err, ErrBookingNotFound)
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, shared.EventBookingUpdated, updated)
	return updated, nil
}

func (c *bookingCommandsImpl) ApplyAction(ctx context.Context, actor booking.Actor, id uuid.UUID, action booking.Action) (*booking.Booking, error) {
	var moved *booking.Booking

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return mapRepoErr(err, ErrBookingNotFound)
		}

		next, err := booking.Transition(current, action, actor, c.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, next); err != nil {
			return mapRepoErr(err, ErrBookingNotFound)
		}

		moved = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking transitioned",
		"booking_id", moved.ID(),
		"action", action.String(),
		"status", moved.Status().String(),
		"actor_role", actor.Role.String())
	c.publish(ctx, shared.EventKindFor(action), moved)
	return moved, nil
}

// Delete is the administrative physical delete; everyone else cancels.
func (c *bookingCommandsImpl) Delete(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	if actor.Role != user.RoleAdmin {
		return booking.ErrForbidden
	}

	var deleted *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return mapRepoErr(err, ErrBookingNotFound)
		}
		if err := tx.Bookings().Delete(ctx, id); err != nil {
			return mapRepoErr(err, ErrBookingNotFound)
		}
		deleted = b
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("booking deleted", "booking_id", id, "actor_id", actor.ID)
	c.publish(ctx, shared.EventBookingDeleted, deleted)
	return nil
}

// FinishElapsed moves every ACTIVE booking whose end has passed to FINISHED.
// One failing booking does not stop the rest; failures are joined into the returned error.
func (c *bookingCommandsImpl) FinishElapsed(ctx context.Context, now time.Time) (int, error) {
	elapsed, err := c.bookings.FindActiveEndedBefore(ctx, now)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var (
		finished int
		failures []error
	)
	for _, candidate := range elapsed {
		var moved *booking.Booking
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			current, err := tx.Bookings().FindByID(ctx, candidate.ID())
			if err != nil {
				return mapRepoErr(err, ErrBookingNotFound)
			}
			// cancelled or already finished since the listing
			if !current.IsActive() {
				return nil
			}
			next, err := booking.Transition(current, booking.ActionFinish, booking.SystemActor(), now)
			if err != nil {
				return err
			}
			if err := tx.Bookings().Update(ctx, next); err != nil {
				return mapRepoErr(err, ErrBookingNotFound)
			}
			moved = next
			return nil
		})
		if err != nil {
			slog.Warn("failed to finish booking", "booking_id", candidate.ID(), "error", err.Error())
			failures = append(failures, err)
			continue
		}
		if moved != nil {
			finished++
			c.publish(ctx, shared.EventBookingFinished, moved)
		}
	}

	return finished, errors.Join(failures...)
}

func (c *bookingCommandsImpl) resolvePayer(ctx context.Context, tx shared.Tx, actor booking.Actor, payerEmail string) (booking.Payer, error) {
	switch actor.Role {
	case user.RoleClient:
		if payerEmail != "" && !actor.HasEmail(payerEmail) {
			return booking.Payer{}, booking.ErrForbidden
		}
		return actorAsPayer(actor), nil
	case user.RoleEmployee, user.RoleAdmin:
		if payerEmail == "" {
			return actorAsPayer(actor), nil
		}
	default:
		return booking.Payer{}, booking.ErrForbidden
	}

	email, err := user.NewEmail(payerEmail)
	if err != nil {
		return booking.Payer{}, err
	}
	payer, err := tx.Users().FindByEmail(ctx, email)
	if err != nil {
		return booking.Payer{}, mapRepoErr(err, ErrPayerNotFound)
	}
	return booking.Payer{ID: payer.ID(), Email: payer.Email().Value()}, nil
}

func actorAsPayer(actor booking.Actor) booking.Payer {
	return booking.Payer{ID: actor.ID, Email: strings.ToLower(strings.TrimSpace(actor.Email))}
}

func ensureAvailable(ctx context.Context, tx shared.Tx, b *booking.Booking, excludeID *uuid.UUID) error {
	taken, err := tx.Bookings().HasOverlap(ctx, b.Room().ID, b.TimeSlot(), excludeID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if taken {
		return ErrSlotUnavailable
	}
	return nil
}

func (c *bookingCommandsImpl) publish(ctx context.Context, kind shared.EventKind, b *booking.Booking) {
	if err := c.publisher.Publish(ctx, shared.NewBookingEvent(kind, b, c.clock.Now())); err != nil {
		slog.Warn("failed to publish booking event",
			"kind", string(kind),
			"booking_id", b.ID(),
			"error", err.Error())
	}
}

// mapRepoErr turns infra error kinds into use case sentinels.
func mapRepoErr(err error, notFound error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return notFound
	case infra.IsKind(err, infra.KindConflict):
		return ErrSlotUnavailable
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
