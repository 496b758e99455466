package middleware

import (
	"net/http"

	"station-booking/internal/handler/httperr"
	"station-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

func internalError() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Code = string(errs.KindInternal)
	resp.Error.Message = "Internal server error"
	return resp
}

// ErrorHandler writes the last public error a handler recorded without
// writing a body itself. Handlers that recorded nothing but set an error
// status get an empty body; anything else unwritten becomes INTERNAL.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Written() {
			return
		}

		if last := c.Errors.ByType(gin.ErrorTypePublic).Last(); last != nil {
			if resp, ok := last.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Writer.WriteHeaderNow()
			return
		}
		resp := internalError()
		c.JSON(resp.Status, resp)
	}
}

// Recovery turns a panic into the INTERNAL error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		LoggerFrom(c).Error("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		resp := internalError()
		c.AbortWithStatusJSON(resp.Status, resp)
	})
}
