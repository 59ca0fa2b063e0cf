//go:build unit

package booking_test

import (
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"

	"github.com/google/uuid"
)

// monday is a weekday in every zone the tests use.
var monday = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

type bookingBuilder struct {
	id     uuid.UUID
	room   booking.RoomRef
	payer  booking.Payer
	start  time.Time
	end    time.Time
	method booking.PaymentMethod
	amount int64
	status booking.Status
}

func newBookingBuilder() *bookingBuilder {
	return &bookingBuilder{
		id:     uuid.New(),
		room:   booking.RoomRef{ID: uuid.New(), Number: 1, Size: room.SizeSmall},
		payer:  booking.Payer{ID: uuid.New(), Email: "ana@example.com"},
		start:  monday,
		end:    monday.Add(time.Hour),
		method: booking.PaymentCash,
		amount: 500,
		status: booking.StatusActive,
	}
}

func (b *bookingBuilder) WithID(id uuid.UUID) *bookingBuilder {
	b.id = id
	return b
}

func (b *bookingBuilder) WithRoom(number int, size room.Size) *bookingBuilder {
	b.room.Number = number
	b.room.Size = size
	return b
}

func (b *bookingBuilder) WithPayerEmail(email string) *bookingBuilder {
	b.payer.Email = email
	return b
}

func (b *bookingBuilder) WithStart(start time.Time) *bookingBuilder {
	d := b.end.Sub(b.start)
	b.start = start
	b.end = start.Add(d)
	return b
}

func (b *bookingBuilder) WithMethod(m booking.PaymentMethod) *bookingBuilder {
	b.method = m
	return b
}

func (b *bookingBuilder) WithAmount(amount int64) *bookingBuilder {
	b.amount = amount
	return b
}

func (b *bookingBuilder) WithStatus(s booking.Status) *bookingBuilder {
	b.status = s
	return b
}

func (b *bookingBuilder) Build() *booking.Booking {
	slot, err := booking.NewTimeSlot(b.start, b.end)
	if err != nil {
		panic(err)
	}
	return booking.ReconstructBooking(b.id, b.room, b.payer, slot, b.method, b.amount, b.status, b.start, b.start)
}

func ids(bs []*booking.Booking) []uuid.UUID {
	out := make([]uuid.UUID, len(bs))
	for i, b := range bs {
		out[i] = b.ID()
	}
	return out
}
