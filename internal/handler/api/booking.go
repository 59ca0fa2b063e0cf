package api

import (
	"net/http"

	"gestion-turnos/internal/domain/booking"
	reqdto "gestion-turnos/internal/handler/dto/request"
	resdto "gestion-turnos/internal/handler/dto/response"
	"gestion-turnos/internal/usecase/commands"
	"gestion-turnos/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Quote a booking
// @Description Prices a room for a time range without booking it. Safe to call on every form change.
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param roomId query string true "Room ID"
// @Param start query string true "Start (RFC3339)"
// @Param end query string true "End (RFC3339)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/quote [get]
func (h *BookingHandler) Quote(c *gin.Context) {
	var query reqdto.QuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid quote parameters")
		return
	}
	roomID, err := uuid.Parse(query.RoomID)
	if err != nil {
		abortBadRequest(c, err, "Invalid room ID format")
		return
	}

	q, err := h.q.Quote(c.Request.Context(), roomID, query.Start, query.End)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromQuote(q)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create booking
// @Description Clients book for themselves. Staff may pass payerEmail to book for a client.
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	b, err := h.cmds.Create(c.Request.Context(), actor, in)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary My bookings
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.BookingResponse
// @Router /api/bookings/mine [get]
func (h *BookingHandler) Mine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	bookings, err := h.q.ListMine(c.Request.Context(), actor)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookings(bookings))
}

// @Summary Booking history
// @Description Staff see every booking, clients only their own.
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param dateFrom query string false "Start on or after (RFC3339)"
// @Param dateTo query string false "Start on or before (RFC3339)"
// @Param status query string false "Status or ALL"
// @Param roomNumber query int false "Room number"
// @Param payerEmail query string false "Payer email contains"
// @Param paymentMethod query string false "Payment method or ALL"
// @Param amountMin query int false "Minimum amount"
// @Param amountMax query int false "Maximum amount"
// @Param sortBy query string false "DATE or AMOUNT"
// @Param direction query string false "ASC or DESC"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings/history [get]
func (h *BookingHandler) History(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var query reqdto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid filter parameters")
		return
	}
	filters, sort, err := query.ToFilters()
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	bookings, err := h.q.History(c.Request.Context(), actor, filters, sort)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookings(bookings))
}

// @Summary Calendar feed
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {array} resdto.CalendarEventResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings/calendar [get]
func (h *BookingHandler) Calendar(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var query reqdto.CalendarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid calendar window")
		return
	}

	events, err := h.q.Calendar(c.Request.Context(), actor, query.From, query.To)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromCalendarEvents(events)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get booking
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid booking ID format")
		return
	}

	b, err := h.q.Get(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Edit booking
// @Description Only ACTIVE bookings can be edited. The amount is recomputed.
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Changes"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid booking ID format")
		return
	}

	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		abortBadRequest(c, bindErr, "Invalid request format")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	b, err := h.cmds.Update(c.Request.Context(), actor, id, in)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Apply a lifecycle action
// @Description cancel, confirmPayment or rejectPayment.
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Param action path string true "Action"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/actions/{action} [post]
func (h *BookingHandler) ApplyAction(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid booking ID format")
		return
	}
	action, err := booking.ParseAction(c.Param("action"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	b, err := h.cmds.ApplyAction(c.Request.Context(), actor, id, action)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Delete booking
// @Description Admin only. Removes the row; use the cancel action otherwise.
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid booking ID format")
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Payments dashboard
// @Description Staff only.
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.PaymentsDashboardResponse
// @Failure 403 {object} httperr.Response
// @Router /api/payments/dashboard [get]
func (h *BookingHandler) PaymentsDashboard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	summary, err := h.q.PaymentsDashboard(c.Request.Context(), actor)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromPaymentSummary(summary)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
