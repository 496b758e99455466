package queries

import (
	"context"

	"station-booking/internal/domain/policy"
	"station-booking/internal/domain/user"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound  = errs.New("user not found")
	ErrUserAccess    = errs.New("only administrators may view other accounts")
	ErrUserDirectory = errs.New("only administrators may list users")
)

type UserListParams struct {
	Role  *string
	After *Cursor
	Limit int
}

type UserFilter struct {
	Role *user.Role
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
	Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (*UserView, error)
	List(ctx context.Context, actor shared.Actor, params UserListParams) ([]*UserView, *Cursor, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	// List returns at most limit users newest first, starting after the keyset when set.
	List(ctx context.Context, filter UserFilter, after *Keyset, limit int) ([]*UserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	view, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		return nil, markNotFound(err, ErrUserNotFound)
	}
	return view, nil
}

// Get checks permission first so a non-admin cannot learn which ids exist.
func (q *userQueriesImpl) Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (*UserView, error) {
	if !policy.CanEditUser(actor.Role, actor.UserID, id) {
		return nil, errs.Mark(ErrUserAccess, errs.ErrForbidden)
	}
	return q.GetCurrentUser(ctx, id)
}

func (q *userQueriesImpl) List(ctx context.Context, actor shared.Actor, params UserListParams) ([]*UserView, *Cursor, error) {
	if !policy.CanManageUsers(actor.Role) {
		return nil, nil, errs.Mark(ErrUserDirectory, errs.ErrForbidden)
	}

	var filter UserFilter
	if params.Role != nil {
		role, err := user.NewRole(*params.Role)
		if err != nil {
			return nil, nil, errs.Mark(err, errs.ErrValidation)
		}
		filter.Role = &role
	}

	after, err := DecodeCursor(params.After)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrValidation)
	}

	limit := ValidateLimit(params.Limit)
	rows, err := q.readStore.List(ctx, filter, after, limit+1)
	if err != nil {
		return nil, nil, shared.MarkRepoErr(err)
	}

	var next *Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = EncodeCursor(Keyset{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}
