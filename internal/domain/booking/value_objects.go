package booking

import (
	"fmt"
	"strings"
	"time"

	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/domain/user"

	"github.com/google/uuid"
)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidRange
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps treats slots as half-open, so back-to-back bookings do not clash.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// RoomRef is the part of the room catalog a booking is priced and listed by.
type RoomRef struct {
	ID     uuid.UUID
	Number int
	Size   room.Size
}

func RoomRefOf(r *room.Room) RoomRef {
	return RoomRef{ID: r.ID(), Number: r.Number(), Size: r.Size()}
}

type Payer struct {
	ID    uuid.UUID
	Email string
}

// Actor is whoever asks for a change. It is always passed in, never looked up.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  user.Role
}

func SystemActor() Actor {
	return Actor{Role: user.RoleSystem}
}

// IsOwner matches on the payer's email, the identity clients are known by.
func (a Actor) IsOwner(b *Booking) bool {
	return a.HasEmail(b.payer.Email)
}

func (a Actor) HasEmail(email string) bool {
	return a.Email != "" && strings.EqualFold(strings.TrimSpace(a.Email), strings.TrimSpace(email))
}
