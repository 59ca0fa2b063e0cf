package api

import (
	"errors"
	"log/slog"
	"net/http"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/handler/httperr"
	"gestion-turnos/internal/handler/middleware"
	"gestion-turnos/internal/pkg/errs"
	"gestion-turnos/internal/usecase/commands"
	"gestion-turnos/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errUnauthenticated = errors.New("unauthenticated")

type errorMapping struct {
	target  error
	status  int
	message string
}

// first match wins
var errorMappings = []errorMapping{
	{booking.ErrInvalidRange, http.StatusBadRequest, "End time must be after start time"},
	{booking.ErrUnknownRoomSize, http.StatusBadRequest, "Room size has no tariff"},
	{booking.ErrNegativeAmount, http.StatusBadRequest, "Amount cannot be negative"},
	{booking.ErrInvalidStatus, http.StatusBadRequest, "Invalid booking status"},
	{booking.ErrInvalidPaymentMethod, http.StatusBadRequest, "Invalid payment method"},
	{booking.ErrInvalidAction, http.StatusBadRequest, "Invalid booking action"},
	{booking.ErrInvalidSortField, http.StatusBadRequest, "Invalid sort field"},
	{booking.ErrInvalidSortDirection, http.StatusBadRequest, "Invalid sort direction"},
	{room.ErrInvalidSize, http.StatusBadRequest, "Invalid room size"},
	{room.ErrInvalidNumber, http.StatusBadRequest, "Room number must be positive"},
	{room.ErrInvalidCapacity, http.StatusBadRequest, "Room capacity must be positive"},
	{room.ErrDescriptionTooLong, http.StatusBadRequest, "Room description is too long"},
	{user.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
	{user.ErrPasswordTooWeak, http.StatusBadRequest, "Password must be at least 8 characters long"},
	{user.ErrEmptyName, http.StatusBadRequest, "First and last name are required"},

	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},

	{booking.ErrForbidden, http.StatusForbidden, "Not allowed to perform this action"},
	{commands.ErrPermissionDenied, http.StatusForbidden, "Insufficient permissions"},
	{queries.ErrStaffOnly, http.StatusForbidden, "Insufficient permissions"},
	{commands.ErrUserInactive, http.StatusForbidden, "Account is inactive"},

	{commands.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{queries.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{commands.ErrRoomNotFound, http.StatusNotFound, "Room not found"},
	{queries.ErrRoomNotFound, http.StatusNotFound, "Room not found"},
	{commands.ErrPayerNotFound, http.StatusNotFound, "Client not found"},
	{queries.ErrUserNotFound, http.StatusNotFound, "User not found"},

	{booking.ErrInvalidTransition, http.StatusConflict, "Action not allowed in current booking status"},
	{booking.ErrNotEditable, http.StatusConflict, "Booking can only be edited while active"},
	{commands.ErrSlotUnavailable, http.StatusConflict, "Room already booked for that time"},
	{commands.ErrRoomNumberTaken, http.StatusConflict, "Room number already in use"},
	{commands.ErrRoomHasBookings, http.StatusConflict, "Room still has bookings"},
	{commands.ErrEmailTaken, http.StatusConflict, "Email already registered"},
}

func abortWithUseCaseError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.Abort(c, m.status, err, m.message)
			return
		}
	}
	slog.Error("unhandled use case error",
		"error", err,
		"path", c.FullPath(),
		"request_id", middleware.GetRequestID(c),
	)
	httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
}

// actorFrom aborts with 401 when RequireAuth did not run.
func actorFrom(c *gin.Context) (booking.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized")
		return booking.Actor{}, false
	}
	return actor, true
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.Abort(c, http.StatusBadRequest, err, msg)
}
