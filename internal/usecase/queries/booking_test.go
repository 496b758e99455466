//go:build unit

package queries_test

import (
	"testing"
	"time"

	"station-booking/internal/domain/user"
	"station-booking/internal/infra/memstore"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/pkg/ptr"
	"station-booking/internal/usecase/queries"
	"station-booking/internal/usecase/shared"
	"station-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingQueriesTestSuite struct {
	suite.Suite
	f       *fixture
	queries queries.BookingQueries
	admin   shared.Actor
	owner   shared.Actor
	other   shared.Actor
	station uuid.UUID
}

func TestBookingQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.queries = queries.NewBookingQueries(memstore.NewBookingReadStore(s.f.store), s.f.clock)
	s.admin = shared.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
	s.owner = shared.Actor{UserID: uuid.New(), Role: user.RoleUser}
	s.other = shared.Actor{UserID: uuid.New(), Role: user.RoleUser}
	s.station = s.f.resource(builder.NewResourceBuilder()).ID()
}

// seed stores n consecutive one-hour bookings created a minute apart.
func (s *BookingQueriesTestSuite) seed(owner uuid.UUID, n int, from time.Time) []uuid.UUID {
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		start := from.Add(time.Duration(i) * time.Hour)
		b := builder.NewBookingBuilder().
			WithOwner(owner).
			WithResource(s.station).
			WithInterval(start, start.Add(time.Hour))
		b.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		s.f.booking(b)
		ids = append(ids, b.ID)
	}
	return ids
}

func (s *BookingQueriesTestSuite) TestGet() {
	ids := s.seed(s.owner.UserID, 1, at(2, 0))

	s.Run("owner reads own booking with resource name", func() {
		view, err := s.queries.Get(s.f.ctx, s.owner, ids[0])
		s.Require().NoError(err)
		s.Equal("Station A-01", view.ResourceName)
		s.Equal("confirmed", view.Status)
	})

	s.Run("admin reads any booking", func() {
		_, err := s.queries.Get(s.f.ctx, s.admin, ids[0])
		s.NoError(err)
	})

	s.Run("other user is forbidden", func() {
		_, err := s.queries.Get(s.f.ctx, s.other, ids[0])
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})

	s.Run("missing booking is not found for any caller", func() {
		_, err := s.queries.Get(s.f.ctx, s.other, uuid.New())
		s.Equal(errs.KindNotFound, errs.KindOf(err))
	})

	s.Run("elapsed booking reads completed", func() {
		s.f.clock.Set(at(3, 0))
		defer s.f.clock.Set(base)

		view, err := s.queries.Get(s.f.ctx, s.owner, ids[0])
		s.Require().NoError(err)
		s.Equal("completed", view.Status)
	})
}

func (s *BookingQueriesTestSuite) TestListScopesByRole() {
	s.seed(s.owner.UserID, 2, at(1, 0))
	s.seed(s.other.UserID, 3, at(5, 0))

	mine, next, err := s.queries.List(s.f.ctx, s.owner, queries.BookingListParams{})
	s.Require().NoError(err)
	s.Nil(next)
	s.Len(mine, 2)
	for _, v := range mine {
		s.Equal(s.owner.UserID, v.OwnerID)
	}

	all, _, err := s.queries.List(s.f.ctx, s.admin, queries.BookingListParams{})
	s.Require().NoError(err)
	s.Len(all, 5)
}

func (s *BookingQueriesTestSuite) TestListPaginates() {
	ids := s.seed(s.owner.UserID, 5, at(1, 0))

	var (
		seen  []uuid.UUID
		after *queries.Cursor
		pages int
	)
	for {
		page, next, err := s.queries.List(s.f.ctx, s.owner, queries.BookingListParams{After: after, Limit: 2})
		s.Require().NoError(err)
		for _, v := range page {
			seen = append(seen, v.ID)
		}
		pages++
		if next == nil {
			break
		}
		after = next
	}

	s.Equal(3, pages)
	// newest first
	s.Equal([]uuid.UUID{ids[4], ids[3], ids[2], ids[1], ids[0]}, seen)
}

func (s *BookingQueriesTestSuite) TestListPaginatesEqualTimestamps() {
	for i := 0; i < 4; i++ {
		start := at(1+i, 0)
		s.f.booking(builder.NewBookingBuilder().
			WithOwner(s.owner.UserID).
			WithResource(s.station).
			WithInterval(start, start.Add(time.Hour)))
	}

	seen := make(map[uuid.UUID]bool)
	var after *queries.Cursor
	for {
		page, next, err := s.queries.List(s.f.ctx, s.owner, queries.BookingListParams{After: after, Limit: 1})
		s.Require().NoError(err)
		for _, v := range page {
			s.False(seen[v.ID], "booking listed twice")
			seen[v.ID] = true
		}
		if next == nil {
			break
		}
		after = next
	}
	s.Len(seen, 4)
}

func (s *BookingQueriesTestSuite) TestListFilters() {
	ids := s.seed(s.owner.UserID, 3, at(1, 0))
	elsewhere := s.f.resource(builder.NewResourceBuilder().WithName("Station B")).ID()
	s.f.booking(builder.NewBookingBuilder().
		WithOwner(s.owner.UserID).
		WithResource(elsewhere).
		WithInterval(at(1, 0), at(2, 0)).
		WithStatus("cancelled"))

	// first seeded booking has ended
	s.f.clock.Set(at(2, 30))

	tests := []struct {
		name   string
		params queries.BookingListParams
		want   int
		check  func(v *queries.BookingView)
		kind   errs.Kind
	}{
		{
			name:   "completed is the effective status",
			params: queries.BookingListParams{Status: ptr.Of("completed")},
			want:   1,
			check:  func(v *queries.BookingView) { s.Equal(ids[0], v.ID) },
		},
		{
			name:   "confirmed excludes elapsed bookings",
			params: queries.BookingListParams{Status: ptr.Of("confirmed")},
			want:   2,
			check:  func(v *queries.BookingView) { s.Equal("confirmed", v.Status) },
		},
		{
			name:   "cancelled",
			params: queries.BookingListParams{Status: ptr.Of("cancelled")},
			want:   1,
			check:  func(v *queries.BookingView) { s.Equal(elsewhere, v.ResourceID) },
		},
		{
			name:   "by resource",
			params: queries.BookingListParams{ResourceID: &elsewhere},
			want:   1,
		},
		{
			name:   "unknown status",
			params: queries.BookingListParams{Status: ptr.Of("archived")},
			kind:   errs.KindValidation,
		},
		{
			name:   "garbage cursor",
			params: queries.BookingListParams{After: &queries.Cursor{After: "%%%"}},
			kind:   errs.KindValidation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			views, _, err := s.queries.List(s.f.ctx, s.owner, tt.params)
			if tt.kind != "" {
				s.Equal(tt.kind, errs.KindOf(err))
				return
			}
			s.Require().NoError(err)
			s.Require().Len(views, tt.want)
			if tt.check != nil {
				for _, v := range views {
					tt.check(v)
				}
			}
		})
	}
}

func TestCursor(t *testing.T) {
	t.Run("正常系: 往復でキーセットが保たれる", func(t *testing.T) {
		k := queries.Keyset{CreatedAt: time.Date(2030, 1, 1, 9, 0, 0, 123456000, time.UTC), ID: uuid.New()}

		got, err := queries.DecodeCursor(queries.EncodeCursor(k))
		require.NoError(t, err)
		assert.True(t, k.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, k.ID, got.ID)
	})

	t.Run("正常系: 空カーソルは先頭ページ", func(t *testing.T) {
		got, err := queries.DecodeCursor(&queries.Cursor{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("異常系: バージョン不一致", func(t *testing.T) {
		_, err := queries.DecodeCursor(&queries.Cursor{After: "djI6MTIz"}) // "v2:123"
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-3))
	assert.Equal(t, 10, queries.ValidateLimit(10))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
