//go:build unit

package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"station-booking/internal/domain/user"
	"station-booking/internal/infra"
	"station-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return nil, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

// stubRow copies values into the Scan destinations in order.
type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func TestUserRepository_Create(t *testing.T) {
	u, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name     string
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{
			name:     "duplicate email",
			execErr:  &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			wantKind: infra.KindDuplicateKey,
		},
		{
			name:     "connection lost",
			execErr:  errors.New("conn closed"),
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
				return len(args) == 8 && args[0] == u.ID() && args[1] == "test@example.com" && args[4] == "user"
			})).Return(pgconn.CommandTag{}, tt.execErr)

			err := NewUserRepository(db).Create(context.Background(), u)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	email, err := user.NewEmail("alice@example.com")
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		created := time.Date(2030, 1, 1, 18, 0, 0, 0, time.FixedZone("JST", 9*60*60))
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, []any{"alice@example.com"}).
			Return(stubRow{values: []any{id, "alice@example.com", "Alice", "090-1234-5678", "hash", "admin", created, created}})

		got, err := NewUserRepository(db).FindByEmail(context.Background(), email)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID())
		assert.Equal(t, user.RoleAdmin, got.Role())
		assert.Equal(t, "hash", got.PasswordHash())
		assert.Equal(t, "090-1234-5678", got.Phone().Value())
		assert.Equal(t, time.UTC, got.CreatedAt().Location())
	})

	t.Run("not found", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(stubRow{err: pgx.ErrNoRows})

		_, err := NewUserRepository(db).FindByEmail(context.Background(), email)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("corrupt role", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
			Return(stubRow{values: []any{uuid.New(), "alice@example.com", "Alice", "", "hash", "root", time.Now(), time.Now()}})

		_, err := NewUserRepository(db).FindByEmail(context.Background(), email)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	u, err := builder.NewUserBuilder().WithPhone("03-1234-5678").BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", tag: pgconn.NewCommandTag("UPDATE 1")},
		{name: "row vanished", tag: pgconn.NewCommandTag("UPDATE 0"), wantKind: infra.KindNotFound},
		{name: "connection lost", execErr: errors.New("conn closed"), wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			// email and role are never part of the statement
			db.On("Exec", mock.Anything, mock.AnythingOfType("string"), []any{u.ID(), "Test User", "03-1234-5678", u.UpdatedAt()}).
				Return(tt.tag, tt.execErr)

			err := NewUserRepository(db).UpdateProfile(context.Background(), u)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", tag: pgconn.NewCommandTag("DELETE 1")},
		{name: "missing", tag: pgconn.NewCommandTag("DELETE 0"), wantKind: infra.KindNotFound},
		{
			name:     "still has bookings",
			execErr:  &pgconn.PgError{Code: "23503", ConstraintName: "bookings_user_id_fkey"},
			wantKind: infra.KindForeignKeyViolated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, mock.AnythingOfType("string"), []any{id}).Return(tt.tag, tt.execErr)

			err := NewUserRepository(db).Delete(context.Background(), id)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
		})
	}
}

func TestBookingRepository_CreateOverlap(t *testing.T) {
	b := builder.NewBookingBuilder().MustBuildDomain()
	db := new(MockDBTX)
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})

	err := NewBookingRepository(db).Create(context.Background(), b)

	assert.True(t, infra.IsKind(err, infra.KindExclusionViolated), "got %v", err)
}
