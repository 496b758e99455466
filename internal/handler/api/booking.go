package api

import (
	"net/http"

	reqdto "station-booking/internal/handler/dto/request"
	resdto "station-booking/internal/handler/dto/response"
	"station-booking/internal/handler/httperr"
	"station-booking/internal/usecase/commands"
	"station-booking/internal/usecase/queries"

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

// @Summary Create booking
// @Description Book a resource for [startTime, endTime). Price is fixed at creation.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), a, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBooking(result.Booking, result.ResourceName))
}

// @Summary List bookings
// @Description Newest first. Users see their own bookings, admins see all.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | confirmed | cancelled | completed"
// @Param resourceId query string false "Resource ID"
// @Param cursor query string false "nextCursor of the previous page"
// @Param limit query int false "page size (default 50, max 200)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	limit, ok := limitQuery(c)
	if !ok {
		return
	}

	params := queries.BookingListParams{
		Status: optionalQuery(c, "status"),
		Limit:  limit,
	}
	if raw := optionalQuery(c, "resourceId"); raw != nil {
		id, err := uuid.Parse(*raw)
		if err != nil {
			httperr.Validation(c, err, "Invalid resourceId")
			return
		}
		params.ResourceID = &id
	}
	if raw := optionalQuery(c, "cursor"); raw != nil {
		params.After = &queries.Cursor{After: *raw}
	}

	views, next, err := h.q.List(c.Request.Context(), a, params)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(views, next))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), a, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Owner or admin. Cancelling a cancelled or completed booking fails with 409.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.cmds.Cancel(c.Request.Context(), a, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(result.Booking, result.ResourceName))
}
