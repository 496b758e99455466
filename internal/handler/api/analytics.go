package api

import (
	"net/http"

	resdto "station-booking/internal/handler/dto/response"
	"station-booking/internal/handler/httperr"
	"station-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	q queries.AnalyticsQueries
}

func NewAnalyticsHandler(q queries.AnalyticsQueries) *AnalyticsHandler {
	return &AnalyticsHandler{q: q}
}

// @Summary Booking analytics
// @Description Totals, daily stats and per-resource usage of bookings starting in [from, to)
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC 3339 or YYYY-MM-DD"
// @Param to query string false "RFC 3339 or YYYY-MM-DD"
// @Success 200 {object} resdto.AnalyticsResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /analytics [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	from, ok := timeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := timeQuery(c, "to")
	if !ok {
		return
	}

	view, err := h.q.Summary(c.Request.Context(), a, from, to)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAnalyticsView(view))
}
