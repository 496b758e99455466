package httperr

import (
	"net/http"

	"station-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

var kindStatus = map[errs.Kind]int{
	errs.KindNotFound:            http.StatusNotFound,
	errs.KindForbidden:           http.StatusForbidden,
	errs.KindUnauthenticated:     http.StatusUnauthorized,
	errs.KindValidation:          http.StatusBadRequest,
	errs.KindInvalidInterval:     http.StatusUnprocessableEntity,
	errs.KindResourceUnavailable: http.StatusConflict,
	errs.KindSlotConflict:        http.StatusConflict,
	errs.KindAlreadyTerminal:     http.StatusConflict,
	errs.KindConflict:            http.StatusConflict,
	errs.KindStoreUnavailable:    http.StatusServiceUnavailable,
}

func StatusFor(kind errs.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code errs.Kind, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = string(code)
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a use case error to its status by kind. Internal errors never
// leak their message.
func Abort(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	status := StatusFor(kind)
	msg := err.Error()
	if kind == errs.KindInternal {
		msg = "Internal server error"
	}
	AbortWithError(c, status, err, kind, msg, nil)
}

// Validation reports a malformed request body or query.
func Validation(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, err, errs.KindValidation, msg, err.Error())
}
