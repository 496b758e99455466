package readstore

import (
	"context"

	"station-booking/internal/infra"
	"station-booking/internal/infra/db"
	"station-booking/internal/pkg/pgconv"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	dbtx db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{dbtx: dbtx}
}

const userViewSelect = `
		SELECT id, email, name, phone, role, created_at, updated_at
		FROM users`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	v, err := scanUserView(r.dbtx.QueryRow(ctx, userViewSelect+`
		WHERE id = $1`,
		id,
	))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return v, nil
}

func (r *UserReadStore) List(ctx context.Context, f queries.UserFilter, after *queries.Keyset, limit int) ([]*queries.UserView, error) {
	var role *string
	if f.Role != nil {
		s := f.Role.String()
		role = &s
	}
	afterAt := pgtype.Timestamptz{}
	afterID := pgtype.UUID{}
	if after != nil {
		afterAt = pgconv.TimeToPgtype(after.CreatedAt)
		afterID = pgtype.UUID{Bytes: after.ID, Valid: true}
	}

	rows, err := r.dbtx.Query(ctx, userViewSelect+`
		WHERE ($1::text IS NULL OR role = $1)
		  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2, $3::uuid))
		ORDER BY created_at DESC, id DESC
		LIMIT $4`,
		pgconv.StringPtrToPgtype(role),
		afterAt,
		afterID,
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	out := []*queries.UserView{}
	for rows.Next() {
		v, err := scanUserView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate users", err)
	}
	return out, nil
}

func scanUserView(row pgx.Row) (*queries.UserView, error) {
	var v queries.UserView
	if err := row.Scan(&v.ID, &v.Email, &v.Name, &v.Phone, &v.Role, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.CreatedAt, v.UpdatedAt = v.CreatedAt.UTC(), v.UpdatedAt.UTC()
	return &v, nil
}
