//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"station-booking/internal/domain/user"
	reqdto "station-booking/internal/handler/dto/request"
	"station-booking/internal/infra/memstore"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/pkg/ptr"
	"station-booking/internal/usecase/commands"
	"station-booking/internal/usecase/queries"
	"station-booking/internal/usecase/shared"
	"station-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserCommandsTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memstore.Store
	clock   *clock.MockClock
	cmds    commands.UserCommands
	queries queries.UserQueries
	admin   shared.Actor
	alice   shared.Actor
	bob     shared.Actor
}

func TestUserCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(UserCommandsTestSuite))
}

func (s *UserCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC))
	s.cmds = commands.NewUserUseCase(s.store, s.clock)
	s.queries = queries.NewUserQueries(memstore.NewUserReadStore(s.store))

	s.admin = s.seed(builder.NewUserBuilder().WithEmail("admin@example.com").AsAdmin())
	s.alice = s.seed(builder.NewUserBuilder().WithEmail("alice@example.com").WithName("Alice").WithPhone("03-1111-2222"))
	s.bob = s.seed(builder.NewUserBuilder().WithEmail("bob@example.com").WithName("Bob"))
}

func (s *UserCommandsTestSuite) seed(b *builder.UserBuilder) shared.Actor {
	u, err := b.BuildDomain()
	s.Require().NoError(err)
	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	}))
	return shared.Actor{UserID: u.ID(), Role: u.Role()}
}

func (s *UserCommandsTestSuite) TestUpdateProfile() {
	s.Run("本人は名前と電話番号を変更できる", func() {

		u, err := s.cmds.UpdateProfile(s.ctx, s.alice, s.alice.UserID, reqdto.UpdateUserRequest{
			Name:  ptr.Of("Alice Liddell"),
			Phone: ptr.Of("+81 90-1234-5678"),
		})
		s.Require().NoError(err)
		s.Equal("Alice Liddell", u.Name().Value())

		view, err := s.queries.GetCurrentUser(s.ctx, s.alice.UserID)
		s.Require().NoError(err)
		s.Equal("Alice Liddell", view.Name)
		s.Equal("+81 90-1234-5678", view.Phone)
		s.Equal("alice@example.com", view.Email)
		s.True(view.UpdatedAt.After(view.CreatedAt))
	})

	s.Run("省略した項目は変わらない", func() {
		_, err := s.cmds.UpdateProfile(s.ctx, s.alice, s.alice.UserID, reqdto.UpdateUserRequest{Phone: ptr.Of("")})
		s.Require().NoError(err)

		view, err := s.queries.GetCurrentUser(s.ctx, s.alice.UserID)
		s.Require().NoError(err)
		s.Equal("Alice Liddell", view.Name)
		s.Empty(view.Phone)
	})

	s.Run("管理者は他人のプロフィールを変更できる", func() {
		u, err := s.cmds.UpdateProfile(s.ctx, s.admin, s.bob.UserID, reqdto.UpdateUserRequest{Name: ptr.Of("Robert")})
		s.Require().NoError(err)
		s.Equal("Robert", u.Name().Value())
		s.Equal(user.RoleUser, u.Role())
	})

	tests := []struct {
		name  string
		actor func() shared.Actor
		id    func() uuid.UUID
		req   reqdto.UpdateUserRequest
		kind  errs.Kind
	}{
		{
			name:  "他人のプロフィールは変更できない",
			actor: func() shared.Actor { return s.bob },
			id:    func() uuid.UUID { return s.alice.UserID },
			req:   reqdto.UpdateUserRequest{Name: ptr.Of("Mallory")},
			kind:  errs.KindForbidden,
		},
		{
			name:  "存在しないIDでも一般ユーザーにはForbidden",
			actor: func() shared.Actor { return s.bob },
			id:    uuid.New,
			req:   reqdto.UpdateUserRequest{Name: ptr.Of("Ghost")},
			kind:  errs.KindForbidden,
		},
		{
			name:  "管理者が存在しないIDを指定するとNotFound",
			actor: func() shared.Actor { return s.admin },
			id:    uuid.New,
			req:   reqdto.UpdateUserRequest{Name: ptr.Of("Ghost")},
			kind:  errs.KindNotFound,
		},
		{
			name:  "メールアドレスは変更できない",
			actor: func() shared.Actor { return s.admin },
			id:    func() uuid.UUID { return s.bob.UserID },
			req:   reqdto.UpdateUserRequest{Email: ptr.Of("bob@evil.example")},
			kind:  errs.KindValidation,
		},
		{
			name:  "本人でもロールは変更できない",
			actor: func() shared.Actor { return s.bob },
			id:    func() uuid.UUID { return s.bob.UserID },
			req:   reqdto.UpdateUserRequest{Name: ptr.Of("Bob"), Role: ptr.Of("admin")},
			kind:  errs.KindValidation,
		},
		{
			name:  "空のパッチは検証エラー",
			actor: func() shared.Actor { return s.bob },
			id:    func() uuid.UUID { return s.bob.UserID },
			kind:  errs.KindValidation,
		},
		{
			name:  "不正な電話番号は検証エラー",
			actor: func() shared.Actor { return s.bob },
			id:    func() uuid.UUID { return s.bob.UserID },
			req:   reqdto.UpdateUserRequest{Phone: ptr.Of("call me")},
			kind:  errs.KindValidation,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.cmds.UpdateProfile(s.ctx, tt.actor(), tt.id(), tt.req)
			s.Equal(tt.kind, errs.KindOf(err))
		})
	}

	view, err := s.queries.GetCurrentUser(s.ctx, s.bob.UserID)
	s.Require().NoError(err)
	s.Equal("bob@example.com", view.Email)
	s.Equal("user", view.Role)
}

func (s *UserCommandsTestSuite) TestDelete() {
	res := builder.NewResourceBuilder().MustBuildDomain()
	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Resources().Create(ctx, res); err != nil {
			return err
		}
		return tx.Bookings().Create(ctx, builder.NewBookingBuilder().
			WithOwner(s.alice.UserID).WithResource(res.ID()).MustBuildDomain())
	}))

	s.Run("予約のあるユーザーは削除できない", func() {
		err := s.cmds.Delete(s.ctx, s.admin, s.alice.UserID)
		s.Equal(errs.KindConflict, errs.KindOf(err))
		s.ErrorIs(err, commands.ErrUserHasBookings)

		_, err = s.queries.GetCurrentUser(s.ctx, s.alice.UserID)
		s.NoError(err)
	})

	s.Run("一般ユーザーは削除できない", func() {
		err := s.cmds.Delete(s.ctx, s.alice, s.bob.UserID)
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})

	s.Run("管理者は自分自身を削除できない", func() {
		err := s.cmds.Delete(s.ctx, s.admin, s.admin.UserID)
		s.Equal(errs.KindConflict, errs.KindOf(err))
	})

	s.Run("予約のないユーザーは削除できる", func() {
		s.Require().NoError(s.cmds.Delete(s.ctx, s.admin, s.bob.UserID))

		_, err := s.queries.GetCurrentUser(s.ctx, s.bob.UserID)
		s.Equal(errs.KindNotFound, errs.KindOf(err))
	})

	s.Run("存在しないユーザーはNotFound", func() {
		err := s.cmds.Delete(s.ctx, s.admin, s.bob.UserID)
		s.Equal(errs.KindNotFound, errs.KindOf(err))
	})
}
