package shared

import (
	"context"
	"time"

	"gestion-turnos/internal/domain/booking"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventBookingCreated   EventKind = "created"
	EventBookingUpdated   EventKind = "updated"
	EventPaymentConfirmed EventKind = "payment_confirmed"
	EventPaymentRejected  EventKind = "payment_rejected"
	EventBookingCancelled EventKind = "cancelled"
	EventBookingFinished  EventKind = "finished"
	EventBookingDeleted   EventKind = "deleted"
)

var actionEvents = map[booking.Action]EventKind{
	booking.ActionConfirmPayment: EventPaymentConfirmed,
	booking.ActionRejectPayment:  EventPaymentRejected,
	booking.ActionCancel:         EventBookingCancelled,
	booking.ActionFinish:         EventBookingFinished,
}

func EventKindFor(action booking.Action) EventKind {
	return actionEvents[action]
}

// RoutingKey is the topic the event is published under, e.g. "booking.cancelled".
func (k EventKind) RoutingKey() string {
	return "booking." + string(k)
}

type BookingEvent struct {
	Kind          EventKind `json:"kind"`
	BookingID     uuid.UUID `json:"booking_id"`
	RoomNumber    int       `json:"room_number"`
	PayerEmail    string    `json:"payer_email"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	PaymentMethod string    `json:"payment_method"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingEvent(kind EventKind, b *booking.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Kind:          kind,
		BookingID:     b.ID(),
		RoomNumber:    b.RoomNumber(),
		PayerEmail:    b.PayerEmail(),
		StartTime:     b.StartTime(),
		EndTime:       b.EndTime(),
		PaymentMethod: b.PaymentMethod().String(),
		Amount:        b.Amount(),
		Status:        b.Status().String(),
		OccurredAt:    at,
	}
}

// EventPublisher hands booking lifecycle events to other services (payment gateway, notifications).
type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}
