package response

import (
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingRoom struct {
	ID     uuid.UUID `json:"id"`
	Number int       `json:"number"`
	Size   string    `json:"size"`
}

type BookingPayer struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type BookingResponse struct {
	ID            uuid.UUID    `json:"id"`
	Room          BookingRoom  `json:"room"`
	Payer         BookingPayer `json:"payer"`
	StartTime     time.Time    `json:"startTime"`
	EndTime       time.Time    `json:"endTime"`
	PaymentMethod string       `json:"paymentMethod"`
	Amount        int64        `json:"amount"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	ref := b.Room()
	payer := b.Payer()
	return &BookingResponse{
		ID:            b.ID(),
		Room:          BookingRoom{ID: ref.ID, Number: ref.Number, Size: ref.Size.String()},
		Payer:         BookingPayer{ID: payer.ID, Email: payer.Email},
		StartTime:     b.StartTime(),
		EndTime:       b.EndTime(),
		PaymentMethod: b.PaymentMethod().String(),
		Amount:        b.Amount(),
		Status:        b.Status().String(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}

func FromBookings(bookings []*booking.Booking) []*BookingResponse {
	out := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = FromBooking(b)
	}
	return out
}

type QuoteResponse struct {
	RoomID     uuid.UUID `json:"roomId"`
	RoomNumber int       `json:"roomNumber"`
	RoomSize   string    `json:"roomSize"`
	BaseRate   int64     `json:"baseRate"`
	Hours      int64     `json:"hours"`
	Weekend    bool      `json:"weekend"`
	Amount     int64     `json:"amount"`
}

func FromQuote(q *queries.Quote) (*QuoteResponse, error) {
	var out QuoteResponse
	if err := copier.Copy(&out, q); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalendarEventResponse is shaped for FullCalendar-style widgets.
type CalendarEventResponse struct {
	ID          uuid.UUID `json:"id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func FromCalendarEvents(events []queries.CalendarEvent) ([]CalendarEventResponse, error) {
	out := make([]CalendarEventResponse, 0, len(events))
	if err := copier.Copy(&out, &events); err != nil {
		return nil, err
	}
	return out, nil
}
