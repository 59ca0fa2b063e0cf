package repository

import (
	"context"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/infra"

	"github.com/google/uuid"
)

const bookingSelect = `SELECT b.id, b.room_id, r.number, r.size, b.payer_id, u.email,
       b.start_time, b.end_time, b.payment_method, b.amount, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.payer_id`

const (
	insertBookingSQL = `INSERT INTO bookings
    (id, room_id, payer_id, start_time, end_time, payment_method, amount, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	updateBookingSQL = `UPDATE bookings
SET room_id = $2, start_time = $3, end_time = $4, payment_method = $5, amount = $6, status = $7, updated_at = $8
WHERE id = $1`

	deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`

	findBookingByIDSQL = bookingSelect + `
WHERE b.id = $1`

	findBookingsByStatusSQL = bookingSelect + `
WHERE b.status = ANY($1)
ORDER BY b.start_time DESC`

	findBookingsByPayerSQL = bookingSelect + `
WHERE b.payer_id = $1
ORDER BY b.start_time DESC`

	findBookingsStartingBetweenSQL = bookingSelect + `
WHERE b.start_time >= $1 AND b.start_time < $2
ORDER BY b.start_time`

	findActiveEndedBeforeSQL = bookingSelect + `
WHERE b.status = 'ACTIVE' AND b.end_time <= $1
ORDER BY b.end_time`

	hasOverlapSQL = `SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE room_id = $1
      AND status IN ('ACTIVE', 'PENDING_PAYMENT_CONFIRMATION')
      AND start_time < $3
      AND end_time > $2
      AND ($4::uuid IS NULL OR id <> $4)
)`
)

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.Room().ID,
		b.Payer().ID,
		b.StartTime(),
		b.EndTime(),
		b.PaymentMethod().String(),
		b.Amount(),
		b.Status().String(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingSQL,
		b.ID(),
		b.Room().ID,
		b.StartTime(),
		b.EndTime(),
		b.PaymentMethod().String(),
		b.Amount(),
		b.Status().String(),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, findBookingByIDSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return b, nil
}

func (r *BookingRepository) FindByStatus(ctx context.Context, statuses ...booking.Status) ([]*booking.Booking, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return r.list(ctx, "failed to find bookings by status", findBookingsByStatusSQL, names)
}

func (r *BookingRepository) FindByPayer(ctx context.Context, payerID uuid.UUID) ([]*booking.Booking, error) {
	return r.list(ctx, "failed to find bookings by payer", findBookingsByPayerSQL, payerID)
}

func (r *BookingRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	return r.list(ctx, "failed to find bookings in window", findBookingsStartingBetweenSQL, from, to)
}

func (r *BookingRepository) FindActiveEndedBefore(ctx context.Context, t time.Time) ([]*booking.Booking, error) {
	return r.list(ctx, "failed to find elapsed bookings", findActiveEndedBeforeSQL, t)
}

// HasOverlap reports whether another occupying booking of the room intersects slot.
// excludeID skips the booking being edited.
func (r *BookingRepository) HasOverlap(ctx context.Context, roomID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, hasOverlapSQL, roomID, slot.Start(), slot.End(), excludeID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingRepository) list(ctx context.Context, msg, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	bookings := make([]*booking.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return bookings, nil
}

func scanBooking(row scanner) (*booking.Booking, error) {
	var (
		id                   uuid.UUID
		ref                  booking.RoomRef
		size                 string
		payer                booking.Payer
		start, end           time.Time
		method, status       string
		amount               int64
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&id, &ref.ID, &ref.Number, &size, &payer.ID, &payer.Email,
		&start, &end, &method, &amount, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ref.Size, err = room.ParseSize(size); err != nil {
		return nil, err
	}
	paymentMethod, err := booking.ParsePaymentMethod(method)
	if err != nil {
		return nil, err
	}
	parsedStatus, err := booking.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(id, ref, payer, slot, paymentMethod, amount, parsedStatus, createdAt, updatedAt), nil
}
