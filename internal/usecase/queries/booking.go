package queries

import (
	"context"
	"fmt"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/infra"
	"gestion-turnos/internal/pkg/errs"
	"gestion-turnos/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrRoomNotFound    = errs.New("room not found")
	ErrStaffOnly       = errs.New("staff only")
	ErrQueryFailed     = errs.New("query failed")
)

type CalendarEvent struct {
	ID          uuid.UUID
	Start       time.Time
	End         time.Time
	Title       string
	Description string
}

type Quote struct {
	RoomID     uuid.UUID
	RoomNumber int
	RoomSize   room.Size
	BaseRate   int64
	Hours      int64
	Weekend    bool
	Amount     int64
}

//go:generate mockgen -source=booking.go -destination=../../mock/queries/booking_mock.go -package=queriesmock
type BookingQueries interface {
	Get(ctx context.Context, actor booking.Actor, id uuid.UUID) (*booking.Booking, error)
	ListMine(ctx context.Context, actor booking.Actor) ([]*booking.Booking, error)
	History(ctx context.Context, actor booking.Actor, filters booking.Filters, sort booking.Sort) ([]*booking.Booking, error)
	PaymentsDashboard(ctx context.Context, actor booking.Actor) (booking.PaymentSummary, error)
	Calendar(ctx context.Context, actor booking.Actor, from, to time.Time) ([]CalendarEvent, error)
	Quote(ctx context.Context, roomID uuid.UUID, start, end time.Time) (*Quote, error)
}

type bookingQueriesImpl struct {
	bookings shared.BookingRepository
	rooms    shared.RoomRepository
	tariff   *booking.Tariff
}

func NewBookingQueries(bookings shared.BookingRepository, rooms shared.RoomRepository, tariff *booking.Tariff) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		rooms:    rooms,
		tariff:   tariff,
	}
}

func (q *bookingQueriesImpl) Get(ctx context.Context, actor booking.Actor, id uuid.UUID) (*booking.Booking, error) {
	b, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrBookingNotFound)
	}
	if !actor.Role.IsStaff() && !actor.IsOwner(b) {
		return nil, booking.ErrForbidden
	}
	return b, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, actor booking.Actor) ([]*booking.Booking, error) {
	mine, err := q.bookings.FindByPayer(ctx, actor.ID)
	if err != nil {
		return nil, mapRepoErr(err, ErrBookingNotFound)
	}
	return booking.FilterAndSort(mine, booking.Filters{}, booking.DefaultSort()), nil
}

// History merges the historical and current listings for staff; clients only see their own.
func (q *bookingQueriesImpl) History(ctx context.Context, actor booking.Actor, filters booking.Filters, sort booking.Sort) ([]*booking.Booking, error) {
	if !actor.Role.IsStaff() {
		mine, err := q.bookings.FindByPayer(ctx, actor.ID)
		if err != nil {
			return nil, mapRepoErr(err, ErrBookingNotFound)
		}
		return booking.FilterAndSort(mine, filters, sort), nil
	}

	historical, err := q.bookings.FindByStatus(ctx, booking.StatusCancelled, booking.StatusFinished)
	if err != nil {
		return nil, mapRepoErr(err, ErrBookingNotFound)
	}
	current, err := q.bookings.FindByStatus(ctx, booking.StatusActive, booking.StatusPendingPayment)
	if err != nil {
		return nil, mapRepoErr(err, ErrBookingNotFound)
	}

	return booking.FilterAndSort(booking.MergeByID(historical, current), filters, sort), nil
}

func (q *bookingQueriesImpl) PaymentsDashboard(ctx context.Context, actor booking.Actor) (booking.PaymentSummary, error) {
	if !actor.Role.IsStaff() {
		return booking.PaymentSummary{}, ErrStaffOnly
	}

	all, err := q.bookings.FindByStatus(ctx,
		booking.StatusPendingPayment,
		booking.StatusActive,
		booking.StatusCancelled,
		booking.StatusFinished,
	)
	if err != nil {
		return booking.PaymentSummary{}, mapRepoErr(err, ErrBookingNotFound)
	}
	return booking.SummarizePayments(all, q.tariff.Location()), nil
}

// Calendar hides other clients' emails from a client; they only learn the slot is taken.
func (q *bookingQueriesImpl) Calendar(ctx context.Context, actor booking.Actor, from, to time.Time) ([]CalendarEvent, error) {
	if !to.After(from) {
		return nil, booking.ErrInvalidRange
	}

	inWindow, err := q.bookings.FindStartingBetween(ctx, from, to)
	if err != nil {
		return nil, mapRepoErr(err, ErrBookingNotFound)
	}

	events := make([]CalendarEvent, 0, len(inWindow))
	for _, b := range inWindow {
		if b.Status() == booking.StatusCancelled {
			continue
		}
		description := b.Status().String()
		if actor.Role.IsStaff() || actor.IsOwner(b) {
			description = b.PayerEmail() + " · " + description
		}
		events = append(events, CalendarEvent{
			ID:          b.ID(),
			Start:       b.StartTime(),
			End:         b.EndTime(),
			Title:       fmt.Sprintf("Sala %d", b.RoomNumber()),
			Description: description,
		})
	}
	return events, nil
}

func (q *bookingQueriesImpl) Quote(ctx context.Context, roomID uuid.UUID, start, end time.Time) (*Quote, error) {
	r, err := q.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, mapRepoErr(err, ErrRoomNotFound)
	}

	amount, err := q.tariff.ComputePrice(r.Size(), start, end)
	if err != nil {
		return nil, err
	}
	rate, err := q.tariff.BaseRate(r.Size())
	if err != nil {
		return nil, err
	}

	return &Quote{
		RoomID:     r.ID(),
		RoomNumber: r.Number(),
		RoomSize:   r.Size(),
		BaseRate:   rate,
		Hours:      booking.BilledHours(end.Sub(start)),
		Weekend:    q.tariff.IsWeekend(start),
		Amount:     amount,
	}, nil
}

func mapRepoErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, ErrQueryFailed)
}
