package api

import (
	"net/http"

	reqdto "station-booking/internal/handler/dto/request"
	resdto "station-booking/internal/handler/dto/response"
	"station-booking/internal/handler/httperr"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/commands"
	"station-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errWindowRequired = errs.New("from and to are required")

type ResourceHandler struct {
	cmds commands.ResourceCommands
	q    queries.ResourceQueries
}

func NewResourceHandler(cmds commands.ResourceCommands, q queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{cmds: cmds, q: q}
}

// @Summary List resources
// @Description List catalog entries ordered by name
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param status query string false "available | maintenance"
// @Param category query string false "standard | gaming | premium"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	filter := queries.ResourceFilter{
		Status:   optionalQuery(c, "status"),
		Category: optionalQuery(c, "category"),
	}
	views, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceViews(views))
}

// @Summary Get resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary Resource availability
// @Description Busy intervals of a resource within [from, to), excluding elapsed ones
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param from query string true "RFC 3339 or YYYY-MM-DD"
// @Param to query string true "RFC 3339 or YYYY-MM-DD"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /resources/{id}/availability [get]
func (h *ResourceHandler) Availability(c *gin.Context) {
	id, ok := pathID(c)
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
	if from == nil || to == nil {
		httperr.Validation(c, errWindowRequired, "from and to are required")
		return
	}

	view, err := h.q.Availability(c.Request.Context(), id, *from, *to)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Create resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Create resource request"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), a, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusCreated, result.ResourceID)
}

// @Summary Update resource
// @Description Partial update; absent fields stay unchanged
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Update resource request"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [patch]
func (h *ResourceHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request format")
		return
	}

	if err := h.cmds.Update(c.Request.Context(), a, id, req); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary Set resource status
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.SetResourceStatusRequest true "Status request"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/status [put]
func (h *ResourceHandler) SetStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.SetResourceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request format")
		return
	}

	if err := h.cmds.SetStatus(c.Request.Context(), a, id, req); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary Delete resource
// @Description Fails with 409 while bookings reference the resource
// @Tags resources
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), a, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler) respond(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.FromResourceView(view))
}
