//go:build unit

package readstore

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"station-booking/internal/infra"
	"station-booking/internal/usecase/queries"

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

func TestUserReadStore_FindByID(t *testing.T) {
	id := uuid.New()
	created := time.Date(2030, 1, 1, 18, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	tests := []struct {
		name     string
		row      stubRow
		wantKind infra.RepositoryErrorKind
	}{
		{
			name: "found",
			row:  stubRow{values: []any{id, "alice@example.com", "Alice", "03-1234-5678", "user", created, created}},
		},
		{
			name:     "not found",
			row:      stubRow{err: pgx.ErrNoRows},
			wantKind: infra.KindNotFound,
		},
		{
			name:     "query failure",
			row:      stubRow{err: errors.New("timeout")},
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("QueryRow", mock.Anything, mock.Anything, []any{id}).Return(tt.row)

			view, err := NewUserReadStore(db).FindByID(context.Background(), id)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice@example.com", view.Email)
			assert.Equal(t, "user", view.Role)
			assert.Equal(t, "03-1234-5678", view.Phone)
			assert.True(t, view.CreatedAt.Equal(created))
			assert.Equal(t, time.UTC, view.CreatedAt.Location())
			assert.Equal(t, time.UTC, view.UpdatedAt.Location())
		})
	}
}

func TestUserReadStore_ListQueryFailure(t *testing.T) {
	db := new(MockDBTX)
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := NewUserReadStore(db).List(context.Background(), queries.UserFilter{}, nil, 10)

	assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
}
