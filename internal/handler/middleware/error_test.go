//go:build unit

package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"station-booking/internal/handler/httperr"
	"station-booking/internal/handler/middleware"
	"station-booking/internal/pkg/config"
	"station-booking/internal/pkg/errs"
	"station-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChain(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, nil))

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(logger), middleware.ErrorHandler())
	return r
}

func TestErrorHandler(t *testing.T) {
	t.Run("記録された公開エラーを書き出す", func(t *testing.T) {
		r := newChain(&bytes.Buffer{})
		r.GET("/conflict", func(c *gin.Context) {
			httperr.Abort(c, errs.WithKind(errors.New("slot taken"), errs.KindSlotConflict))
		})

		w := httptest.PerformRequest(t, r, http.MethodGet, "/conflict", nil, "")
		httptest.AssertErrorCode(t, w, http.StatusConflict, "SLOT_CONFLICT")
	})

	t.Run("パニックはINTERNALになる", func(t *testing.T) {
		var buf bytes.Buffer
		r := newChain(&buf)
		r.GET("/boom", func(*gin.Context) { panic("boom") })

		w := httptest.PerformRequest(t, r, http.MethodGet, "/boom", nil, "")
		httptest.AssertErrorCode(t, w, http.StatusInternalServerError, "INTERNAL")
		assert.Contains(t, buf.String(), "panic recovered")
	})

	t.Run("本文なしのエラーステータスはそのまま返す", func(t *testing.T) {
		r := newChain(&bytes.Buffer{})
		r.GET("/gone", func(c *gin.Context) { c.Status(http.StatusGone) })

		w := httptest.PerformRequest(t, r, http.MethodGet, "/gone", nil, "")
		assert.Equal(t, http.StatusGone, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestRequestLogger(t *testing.T) {
	t.Run("受け取ったX-Request-IDを引き継ぐ", func(t *testing.T) {
		var buf bytes.Buffer
		r := newChain(&buf)
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		req := nethttptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := nethttptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
		assert.Contains(t, buf.String(), "request_id=req-123")
		assert.Contains(t, buf.String(), "status=204")
	})

	t.Run("未指定ならIDを採番する", func(t *testing.T) {
		r := newChain(&bytes.Buffer{})
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.PerformRequest(t, r, http.MethodGet, "/ok", nil, "")
		require.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestNewCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(config.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet},
		AllowHeaders:     []string{"Authorization"},
		AllowCredentials: true,
	}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := nethttptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := nethttptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Expose-Headers")), "x-request-id")
}
