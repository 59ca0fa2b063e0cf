//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates a room", func(t *testing.T) {
		f := newFixture(t)
		rc := commands.NewRoomCommands(f.store.Rooms(), f.clock)

		got, err := rc.Create(ctx, f.admin, commands.CreateRoomInput{Number: 10, Size: room.SizeLarge, Capacity: 20})

		require.NoError(t, err)
		assert.Equal(t, 10, got.Number())
		assert.Equal(t, monday, got.CreatedAt())
	})

	t.Run("duplicate number", func(t *testing.T) {
		f := newFixture(t)
		rc := commands.NewRoomCommands(f.store.Rooms(), f.clock)

		_, err := rc.Create(ctx, f.admin, commands.CreateRoomInput{Number: f.small.Number(), Size: room.SizeSmall, Capacity: 2})

		assert.ErrorIs(t, err, commands.ErrRoomNumberTaken)
	})

	t.Run("employee cannot create", func(t *testing.T) {
		f := newFixture(t)
		rc := commands.NewRoomCommands(f.store.Rooms(), f.clock)

		_, err := rc.Create(ctx, f.employee, commands.CreateRoomInput{Number: 11, Size: room.SizeSmall, Capacity: 2})

		assert.ErrorIs(t, err, commands.ErrPermissionDenied)
	})

	t.Run("invalid capacity", func(t *testing.T) {
		f := newFixture(t)
		rc := commands.NewRoomCommands(f.store.Rooms(), f.clock)

		_, err := rc.Create(ctx, f.admin, commands.CreateRoomInput{Number: 11, Size: room.SizeSmall, Capacity: 0})

		assert.ErrorIs(t, err, room.ErrInvalidCapacity)
	})

	t.Run("update description", func(t *testing.T) {
		f := newFixture(t)
		rc := commands.NewRoomCommands(f.store.Rooms(), f.clock)
		f.clock.Advance(time.Hour)

		got, err := rc.UpdateDescription(ctx, f.admin, f.small.ID(), "  Con pizarra  ")

		require.NoError(t, err)
		assert.Equal(t, "Con pizarra", got.Description())
		assert.Equal(t, monday.Add(time.Hour), got.UpdatedAt())
		assert.Equal(t, "Sala chica", f.small.Description())
	})

	t.Run("update missing room", func(t *testing.T) {
		f := newFixture(t)
		rc := commands.NewRoomCommands(f.store.Rooms(), f.clock)

		_, err := rc.UpdateDescription(ctx, f.admin, uuid.New(), "x")

		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("room with bookings cannot be deleted", func(t *testing.T) {
		f := newFixture(t)
		rc := commands.NewRoomCommands(f.store.Rooms(), f.clock)
		f.seed(t, f.small, monday, 1, booking.PaymentCash, booking.StatusFinished)

		assert.ErrorIs(t, rc.Delete(ctx, f.admin, f.small.ID()), commands.ErrRoomHasBookings)
		assert.NoError(t, rc.Delete(ctx, f.admin, f.medium.ID()))
		assert.ErrorIs(t, rc.Delete(ctx, f.admin, f.medium.ID()), commands.ErrRoomNotFound)
	})
}
