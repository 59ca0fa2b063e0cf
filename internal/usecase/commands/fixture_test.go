//go:build unit

package commands_test

import (
	"testing"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/pkg/clock"
	"gestion-turnos/internal/usecase/commands"
	"gestion-turnos/internal/usecase/shared/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Monday 2024-03-04 09:00 UTC
var monday = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memstore.Store
	events    *memstore.Recorder
	clock     *clock.FixedClock
	tariff    *booking.Tariff
	commands  commands.BookingCommands
	small     *room.Room
	medium    *room.Room
	client    *user.User
	other     *user.User
	clientAct booking.Actor
	otherAct  booking.Actor
	employee  booking.Actor
	admin     booking.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:  memstore.New(),
		events: &memstore.Recorder{},
		clock:  clock.NewFixedClock(monday),
		tariff: booking.NewDefaultTariff(),
	}

	var err error
	f.small, err = room.NewRoom(1, room.SizeSmall, 4, "Sala chica", monday)
	require.NoError(t, err)
	f.medium, err = room.NewRoom(2, room.SizeMedium, 10, "Sala mediana", monday)
	require.NoError(t, err)
	f.store.PutRoom(f.small)
	f.store.PutRoom(f.medium)

	f.client = newUser(t, "ana@example.com", user.RoleClient)
	f.other = newUser(t, "beto@example.com", user.RoleClient)
	f.store.PutUser(f.client)
	f.store.PutUser(f.other)

	f.clientAct = booking.Actor{ID: f.client.ID(), Email: "Ana@Example.com", Role: user.RoleClient}
	f.otherAct = booking.Actor{ID: f.other.ID(), Email: f.other.Email().Value(), Role: user.RoleClient}
	f.employee = booking.Actor{ID: uuid.New(), Email: "staff@example.com", Role: user.RoleEmployee}
	f.admin = booking.Actor{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}

	factory := booking.NewFactory(f.clock, f.tariff)
	f.commands = commands.NewBookingCommands(f.store, f.store.Bookings(), factory, f.tariff, f.events, f.clock)
	return f
}

func newUser(t *testing.T, email string, role user.Role) *user.User {
	t.Helper()
	e, err := user.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(e, "hash", role, user.Profile{FirstName: "Test", LastName: "User"}, monday)
	require.NoError(t, err)
	return u
}

// seed stores a booking of f.client in status at [start, start+hours).
func (f *fixture) seed(t *testing.T, rm *room.Room, start time.Time, hours int, method booking.PaymentMethod, status booking.Status) *booking.Booking {
	t.Helper()
	end := start.Add(time.Duration(hours) * time.Hour)
	slot, err := booking.NewTimeSlot(start, end)
	require.NoError(t, err)
	amount, err := f.tariff.ComputePrice(rm.Size(), start, end)
	require.NoError(t, err)

	b := booking.ReconstructBooking(
		uuid.New(),
		booking.RoomRefOf(rm),
		booking.Payer{ID: f.client.ID(), Email: f.client.Email().Value()},
		slot,
		method,
		amount,
		status,
		monday, monday,
	)
	f.store.PutBooking(b)
	return b
}
