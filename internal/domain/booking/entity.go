package booking

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	id            uuid.UUID
	room          RoomRef
	payer         Payer
	slot          TimeSlot
	paymentMethod PaymentMethod
	amount        int64
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

func ReconstructBooking(
	id uuid.UUID,
	roomRef RoomRef,
	payer Payer,
	slot TimeSlot,
	paymentMethod PaymentMethod,
	amount int64,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		room:          roomRef,
		payer:         payer,
		slot:          slot,
		paymentMethod: paymentMethod,
		amount:        amount,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) IsActive() bool {
	return b.status == StatusActive
}

func (b *Booking) HasElapsed(now time.Time) bool {
	return !now.Before(b.slot.End())
}

func (b *Booking) clone() *Booking {
	c := *b
	return &c
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Room() RoomRef                { return b.room }
func (b *Booking) RoomNumber() int              { return b.room.Number }
func (b *Booking) Payer() Payer                 { return b.payer }
func (b *Booking) PayerEmail() string           { return b.payer.Email }
func (b *Booking) TimeSlot() TimeSlot           { return b.slot }
func (b *Booking) StartTime() time.Time         { return b.slot.Start() }
func (b *Booking) EndTime() time.Time           { return b.slot.End() }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) Amount() int64                { return b.amount }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
