//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"station-booking/internal/domain/user"
	"station-booking/internal/handler/api"
	reqdto "station-booking/internal/handler/dto/request"
	resdto "station-booking/internal/handler/dto/response"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/pkg/ptr"
	"station-booking/internal/usecase/commands"
	"station-booking/internal/usecase/queries"
	"station-booking/internal/usecase/shared"
	"station-booking/tests/common/builder"
	"station-booking/tests/common/httptest"
	commandsmock "station-booking/tests/mock/commands"
	queriesmock "station-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserCommands
	mockQueries  *queriesmock.MockUserQueries
	actor        shared.Actor
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	h := api.NewUserHandler(s.mockCommands, s.mockQueries)
	s.actor = shared.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

	g := s.router.Group("/users", withActor(s.actor))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestList() {
	s.Run("正常系: ロール指定とカーソル", func() {
		views := []*queries.UserView{
			builder.NewUserBuilder().WithEmail("a@example.com").BuildView(),
			builder.NewUserBuilder().WithEmail("b@example.com").BuildView(),
		}
		s.mockQueries.EXPECT().
			List(gomock.Any(), s.actor, queries.UserListParams{Role: ptr.Of("user"), Limit: 2}).
			Return(views, &queries.Cursor{After: "next-page"}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?role=user&limit=2", nil, "")

		var res resdto.UserListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Len(res.Items, 2)
		s.Equal("a@example.com", res.Items[0].Email)
		s.Require().NotNil(res.NextCursor)
		s.Equal("next-page", *res.NextCursor)
	})

	s.Run("異常系: 不正なlimit", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?limit=-1", nil, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, string(errs.KindValidation))
	})

	s.Run("異常系: 管理者以外", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.actor, gomock.Any()).
			Return(nil, nil, errs.Mark(queries.ErrUserDirectory, errs.ErrForbidden))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users", nil, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusForbidden, string(errs.KindForbidden))
	})
}

func (s *UserHandlerTestSuite) TestGet() {
	b := builder.NewUserBuilder().WithPhone("03-1234-5678")

	s.mockQueries.EXPECT().Get(gomock.Any(), s.actor, b.ID).Return(b.BuildView(), nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/"+b.ID.String(), nil, "")

	var res resdto.UserResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	s.Equal(b.ID, res.ID)
	s.Equal("03-1234-5678", res.Phone)
}

func (s *UserHandlerTestSuite) TestUpdate() {
	b := builder.NewUserBuilder().WithName("Renamed").WithPhone("090-0000-1111")
	url := "/users/" + b.ID.String()

	s.Run("正常系: 更新後のユーザーを返す", func() {
		u, err := b.BuildDomain()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().
			UpdateProfile(gomock.Any(), s.actor, b.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ shared.Actor, _ uuid.UUID, req reqdto.UpdateUserRequest) (*user.User, error) {
				s.Equal("Renamed", *req.Name)
				s.Equal("090-0000-1111", *req.Phone)
				s.Nil(req.Email)
				return u, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]string{"name": "Renamed", "phone": "090-0000-1111"}, "")

		var res resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal("Renamed", res.Name)
		s.Equal("090-0000-1111", res.Phone)
		s.Equal("test@example.com", res.Email)
	})

	s.Run("異常系: 名前が長すぎる", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]string{"name": strings.Repeat("a", 101)}, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, string(errs.KindValidation))
	})

	errCases := []struct {
		name   string
		err    error
		status int
		code   errs.Kind
	}{
		{"メールアドレス変更", errs.Mark(user.ErrImmutableField, errs.ErrValidation), http.StatusBadRequest, errs.KindValidation},
		{"他人のプロフィール", errs.Mark(commands.ErrNotProfileOwner, errs.ErrForbidden), http.StatusForbidden, errs.KindForbidden},
		{"存在しないユーザー", errs.Mark(commands.ErrUserNotFound, errs.ErrNotFound), http.StatusNotFound, errs.KindNotFound},
	}
	for _, tc := range errCases {
		s.Run("異常系: "+tc.name, func() {
			s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), s.actor, b.ID, gomock.Any()).Return(nil, tc.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]string{"email": "x@example.com"}, "")
			httptest.AssertErrorCode(s.T(), w, tc.status, string(tc.code))
		})
	}
}

func (s *UserHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/users/" + id.String()

	s.Run("正常系: 204", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.actor, id).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("異常系: 予約が残っている", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.actor, id).
			Return(errs.Mark(commands.ErrUserHasBookings, errs.ErrConflict))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "user has bookings")
	})

	s.Run("異常系: 不正なID", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/users/not-a-uuid", nil, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, string(errs.KindValidation))
	})
}
