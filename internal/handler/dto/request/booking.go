package request

import (
	"strconv"
	"strings"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID        uuid.UUID `json:"roomId" binding:"required"`
	PayerEmail    string    `json:"payerEmail" binding:"omitempty,email"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
	PaymentMethod string    `json:"paymentMethod" binding:"required"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	method, err := booking.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	return commands.CreateBookingInput{
		RoomID:        r.RoomID,
		PayerEmail:    strings.TrimSpace(r.PayerEmail),
		Start:         r.StartTime,
		End:           r.EndTime,
		PaymentMethod: method,
	}, nil
}

type UpdateBookingRequest struct {
	// RoomID omitted keeps the booking in its current room
	RoomID        *uuid.UUID `json:"roomId,omitempty"`
	StartTime     time.Time  `json:"startTime" binding:"required"`
	EndTime       time.Time  `json:"endTime" binding:"required"`
	PaymentMethod string     `json:"paymentMethod" binding:"required"`
}

func (r UpdateBookingRequest) ToInput() (commands.UpdateBookingInput, error) {
	method, err := booking.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return commands.UpdateBookingInput{}, err
	}
	in := commands.UpdateBookingInput{
		Start:         r.StartTime,
		End:           r.EndTime,
		PaymentMethod: method,
	}
	if r.RoomID != nil {
		in.RoomID = *r.RoomID
	}
	return in, nil
}

type QuoteQuery struct {
	RoomID string    `form:"roomId" binding:"required,uuid"`
	Start  time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End    time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type CalendarQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// HistoryQuery mirrors the history screen's filter bar. Status, room number and
// payment method accept ALL, TODOS or TODAS for "no filter".
type HistoryQuery struct {
	DateFrom      *time.Time `form:"dateFrom" time_format:"2006-01-02T15:04:05Z07:00"`
	DateTo        *time.Time `form:"dateTo" time_format:"2006-01-02T15:04:05Z07:00"`
	Status        string     `form:"status"`
	RoomNumber    string     `form:"roomNumber"`
	PayerEmail    string     `form:"payerEmail"`
	PaymentMethod string     `form:"paymentMethod"`
	AmountMin     *int64     `form:"amountMin" binding:"omitempty,gte=0"`
	AmountMax     *int64     `form:"amountMax" binding:"omitempty,gte=0"`
	SortBy        string     `form:"sortBy"`
	Direction     string     `form:"direction"`
}

func (q HistoryQuery) ToFilters() (booking.Filters, booking.Sort, error) {
	filters := booking.Filters{
		DateFrom:           q.DateFrom,
		DateTo:             q.DateTo,
		PayerEmailContains: q.PayerEmail,
		AmountMin:          q.AmountMin,
		AmountMax:          q.AmountMax,
	}

	if !isAll(q.Status) {
		status, err := booking.ParseStatus(q.Status)
		if err != nil {
			return booking.Filters{}, booking.Sort{}, err
		}
		filters.Status = &status
	}
	if !isAll(q.RoomNumber) {
		number, err := strconv.Atoi(strings.TrimSpace(q.RoomNumber))
		if err != nil || number <= 0 {
			return booking.Filters{}, booking.Sort{}, room.ErrInvalidNumber
		}
		filters.RoomNumber = &number
	}
	if !isAll(q.PaymentMethod) {
		method, err := booking.ParsePaymentMethod(q.PaymentMethod)
		if err != nil {
			return booking.Filters{}, booking.Sort{}, err
		}
		filters.PaymentMethod = &method
	}

	field, err := booking.ParseSortField(q.SortBy)
	if err != nil {
		return booking.Filters{}, booking.Sort{}, err
	}
	direction, err := booking.ParseSortDirection(q.Direction)
	if err != nil {
		return booking.Filters{}, booking.Sort{}, err
	}

	return filters, booking.Sort{Field: field, Direction: direction}, nil
}

func isAll(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ALL", "TODOS", "TODAS":
		return true
	default:
		return false
	}
}
