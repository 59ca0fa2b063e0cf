//go:build unit

package api_test

import (
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	clientActor   = booking.Actor{ID: uuid.New(), Email: "ana@example.com", Role: user.RoleClient}
	employeeActor = booking.Actor{ID: uuid.New(), Email: "staff@example.com", Role: user.RoleEmployee}
	adminActor    = booking.Actor{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
)

// fakeAuth stands in for RequireAuth: the bearer token names the actor.
func fakeAuth(c *gin.Context) {
	var actor booking.Actor
	switch c.GetHeader("Authorization") {
	case "Bearer client":
		actor = clientActor
	case "Bearer employee":
		actor = employeeActor
	case "Bearer admin":
		actor = adminActor
	default:
		c.AbortWithStatusJSON(401, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	c.Set("user_id", actor.ID)
	c.Set("user_email", actor.Email)
	c.Set("user_role", actor.Role)
	c.Next()
}

var monday = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func sampleRoom() *room.Room {
	return room.ReconstructRoom(uuid.New(), 2, room.SizeMedium, 10, "Sala mediana", monday, monday)
}

func sampleBooking(status booking.Status) *booking.Booking {
	slot, _ := booking.NewTimeSlot(monday, monday.Add(2*time.Hour))
	return booking.ReconstructBooking(
		uuid.New(),
		booking.RoomRefOf(sampleRoom()),
		booking.Payer{ID: clientActor.ID, Email: clientActor.Email},
		slot,
		booking.PaymentCash,
		16000,
		status,
		monday, monday,
	)
}
