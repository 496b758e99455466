package api

import (
	"net/http"

	reqdto "station-booking/internal/handler/dto/request"
	resdto "station-booking/internal/handler/dto/response"
	"station-booking/internal/handler/httperr"
	"station-booking/internal/usecase/commands"
	"station-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	cmds commands.UserCommands
	q    queries.UserQueries
}

func NewUserHandler(cmds commands.UserCommands, q queries.UserQueries) *UserHandler {
	return &UserHandler{cmds: cmds, q: q}
}

// @Summary List users
// @Description Admin only. Newest accounts first.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "user | admin"
// @Param cursor query string false "nextCursor of the previous page"
// @Param limit query int false "page size (default 50, max 200)"
// @Success 200 {object} resdto.UserListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	limit, ok := limitQuery(c)
	if !ok {
		return
	}

	params := queries.UserListParams{
		Role:  optionalQuery(c, "role"),
		Limit: limit,
	}
	if raw := optionalQuery(c, "cursor"); raw != nil {
		params.After = &queries.Cursor{After: *raw}
	}

	views, next, err := h.q.List(c.Request.Context(), a, params)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserPage(views, next))
}

// @Summary Get user
// @Description The user themself or an admin.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, resdto.FromUserView(view))
}

// @Summary Update user profile
// @Description Name and phone only. Users edit their own profile, admins any. Email and role are rejected.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body reqdto.UpdateUserRequest true "Profile fields to change"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request format")
		return
	}

	u, err := h.cmds.UpdateProfile(c.Request.Context(), a, id, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUser(u))
}

// @Summary Delete user
// @Description Admin only. Fails with 409 while the user has bookings.
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
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
