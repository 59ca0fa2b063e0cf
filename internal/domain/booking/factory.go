package booking

import (
	"time"

	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateBooking prices a new booking. Payments that need staff confirmation start pending.
func (f *Factory) CreateBooking(
	roomEntity *room.Room,
	payer Payer,
	start, end time.Time,
	method PaymentMethod,
) (*Booking, error) {
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	slot, err := NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	amount, err := f.PriceCalculator.ComputePrice(roomEntity.Size(), slot.Start(), slot.End())
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	status := StatusActive
	if method.RequiresConfirmation() {
		status = StatusPendingPayment
	}

	now := f.Clock.Now()
	return &Booking{
		id:            uuid.New(),
		room:          RoomRefOf(roomEntity),
		payer:         payer,
		slot:          slot,
		paymentMethod: method,
		amount:        amount,
		status:        status,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}
