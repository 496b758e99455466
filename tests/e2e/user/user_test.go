//go:build e2e

package user_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"station-booking/internal/domain/user"
	"station-booking/internal/handler/dto/response"
	"station-booking/tests/common/authtest"
	"station-booking/tests/common/dbtest"
	"station-booking/tests/common/httptest"
	"station-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const usersURL = "/api/users"

type userSuite struct {
	e2e.SharedSuite
	adminID    uuid.UUID
	adminToken string
	aliceID    uuid.UUID
	aliceToken string
	bobID      uuid.UUID
	bobToken   string
}

func TestUserSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(userSuite))
}

func (s *userSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	s.adminID, s.adminToken = authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
	s.aliceID, s.aliceToken = authtest.CreateAndLogin(t, s.DB, s.Router, "alice@example.com", string(user.RoleUser))
	s.bobID, s.bobToken = authtest.CreateAndLogin(t, s.DB, s.Router, "bob@example.com", string(user.RoleUser))
}

func (s *userSuite) userURL(id uuid.UUID) string {
	return usersURL + "/" + id.String()
}

func (s *userSuite) TestList() {
	s.Run("管理者は全ユーザーをページ単位で取得できる", func() {
		t := s.T()

		var first response.UserListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, usersURL+"?limit=2", nil, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &first)
		require.Len(t, first.Items, 2)
		require.NotNil(t, first.NextCursor)

		var second response.UserListResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, usersURL+"?limit=2&cursor="+url.QueryEscape(*first.NextCursor), nil, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)
		require.Len(t, second.Items, 1)
		assert.Nil(t, second.NextCursor)

		seen := map[uuid.UUID]bool{}
		for _, u := range append(first.Items, second.Items...) {
			seen[u.ID] = true
		}
		assert.Len(t, seen, 3)
	})

	s.Run("ロールで絞り込める", func() {
		t := s.T()

		var res response.UserListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, usersURL+"?role=admin", nil, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Len(t, res.Items, 1)
		assert.Equal(t, s.adminID, res.Items[0].ID)
	})

	s.Run("一般ユーザーは一覧できない", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, usersURL, nil, s.aliceToken)
		httptest.AssertErrorCode(s.T(), w, http.StatusForbidden, "FORBIDDEN")
	})
}

func (s *userSuite) TestUpdate() {
	s.Run("本人は名前と電話番号を変更できる", func() {
		t := s.T()

		var res response.UserResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.userURL(s.aliceID),
			map[string]string{"name": "Alice Liddell", "phone": "+81 90-1234-5678"}, s.aliceToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.Equal(t, "Alice Liddell", res.Name)
		assert.Equal(t, "+81 90-1234-5678", res.Phone)

		var me response.UserResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/auth/me", nil, s.aliceToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &me)
		assert.Equal(t, "Alice Liddell", me.Name)
		assert.Equal(t, "+81 90-1234-5678", me.Phone)
	})

	s.Run("メールアドレスとロールは変更できない", func() {
		t := s.T()

		for _, body := range []map[string]string{
			{"email": "alice@evil.example"},
			{"name": "Alice", "role": "admin"},
		} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.userURL(s.aliceID), body, s.aliceToken)
			httptest.AssertErrorCode(t, w, http.StatusBadRequest, "VALIDATION")
		}

		var email, role string
		err := s.DB.QueryRow(t.Context(), "SELECT email, role FROM users WHERE id = $1", s.aliceID).Scan(&email, &role)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email)
		assert.Equal(t, "user", role)
	})

	s.Run("他人のプロフィールは変更できない", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, s.userURL(s.bobID),
			map[string]string{"name": "Mallory"}, s.aliceToken)
		httptest.AssertErrorCode(s.T(), w, http.StatusForbidden, "FORBIDDEN")
	})

	s.Run("管理者は他人のプロフィールを変更できる", func() {
		t := s.T()

		var res response.UserResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.userURL(s.bobID),
			map[string]string{"name": "Robert"}, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.Equal(t, "Robert", res.Name)
		assert.Equal(t, "user", res.Role)
	})
}

func (s *userSuite) TestDelete() {
	s.Run("予約のあるユーザーは削除できない", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, dbtest.DefaultResource())
		start := time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings",
			map[string]any{"resourceId": resourceID, "startTime": start, "endTime": start.Add(time.Hour)}, s.aliceToken)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, s.userURL(s.aliceID), nil, s.adminToken)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "users", "id = $1", s.aliceID))
	})

	s.Run("予約のないユーザーは削除できる", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, s.userURL(s.bobID), nil, s.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		assert.Equal(t, 0, dbtest.CountRows(t, s.DB, "users", "id = $1", s.bobID))

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, s.userURL(s.bobID), nil, s.adminToken)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("一般ユーザーは削除できない", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, s.userURL(s.bobID), nil, s.aliceToken)
		httptest.AssertErrorCode(s.T(), w, http.StatusForbidden, "FORBIDDEN")
		assert.Equal(s.T(), 1, dbtest.CountRows(s.T(), s.DB, "users", "id = $1", s.bobID))
	})
}
