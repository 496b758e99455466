//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ErrorBody mirrors httperr.Response on the wire.
type ErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func statusIs(t *testing.T, w *httptest.ResponseRecorder, want int) bool {
	t.Helper()
	return assert.Equalf(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &body), "error body is not JSON: %s", w.Body.String())
	return body
}

// AssertSuccessResponse decodes a 2xx body into target when target is non-nil.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()
	if !statusIs(t, w, expectedStatus) || target == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), target), "response is not JSON: %s", w.Body.String())
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()
	statusIs(t, w, expectedStatus)
	body := decodeError(t, w)
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg)
	}
}

// AssertErrorCode checks the status and the error kind reported in the body.
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	statusIs(t, w, expectedStatus)
	assert.Equal(t, expectedCode, decodeError(t, w).Error.Code, "error code mismatch")
}
