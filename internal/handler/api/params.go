package api

import (
	"strconv"
	"time"

	"station-booking/internal/handler/httperr"
	"station-booking/internal/handler/middleware"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errNoActor      = errs.New("no authenticated user in context")
	errInvalidTime  = errs.New("time must be RFC 3339 or YYYY-MM-DD")
	errInvalidLimit = errs.New("limit must be a positive integer")
)

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Validation(c, err, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func actor(c *gin.Context) (shared.Actor, bool) {
	a, ok := middleware.GetActor(c)
	if !ok {
		httperr.Abort(c, errs.Mark(errNoActor, errs.ErrUnauthenticated))
		return shared.Actor{}, false
	}
	return a, true
}

func optionalQuery(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, errInvalidTime
	}
	return t, nil
}

// timeQuery reports false after aborting on a malformed value.
func timeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := optionalQuery(c, key)
	if raw == nil {
		return nil, true
	}
	t, err := parseTime(*raw)
	if err != nil {
		httperr.Validation(c, err, "Invalid "+key)
		return nil, false
	}
	return &t, true
}

func limitQuery(c *gin.Context) (int, bool) {
	raw := optionalQuery(c, "limit")
	if raw == nil {
		return 0, true
	}
	n, err := strconv.Atoi(*raw)
	if err != nil || n <= 0 {
		httperr.Validation(c, errInvalidLimit, "Invalid limit")
		return 0, false
	}
	return n, true
}
