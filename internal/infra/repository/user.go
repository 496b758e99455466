package repository

import (
	"context"
	"time"

	"station-booking/internal/domain/user"
	"station-booking/internal/infra"
	"station-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	dbtx db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{dbtx: dbtx}
}

// Create fails with KindDuplicateKey when the email is taken.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID(), u.Email().Value(), u.Name().Value(), u.PasswordHash(), u.Role().String(),
		u.CreatedAt(), u.UpdatedAt(), u.Phone().Value(),
	)
	if err != nil {
		return infra.WrapPgErr("failed to create user", err)
	}
	return nil
}

const userSelect = `
		SELECT id, email, name, phone, password_hash, role, created_at, updated_at
		FROM users`

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return scanUser(r.dbtx.QueryRow(ctx, userSelect+`
		WHERE lower(email) = lower($1)`,
		email.Value(),
	), "failed to find user by email")
}

// FindByIDForUpdate locks the row until the transaction ends.
func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return scanUser(r.dbtx.QueryRow(ctx, userSelect+`
		WHERE id = $1
		FOR UPDATE`,
		id,
	), "failed to find user by ID")
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE users
		SET name = $2, phone = $3, updated_at = $4
		WHERE id = $1`,
		u.ID(), u.Name().Value(), u.Phone().Value(), u.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapPgErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete relies on bookings.user_id being ON DELETE RESTRICT.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return infra.WrapPgErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanUser(row pgx.Row, msg string) (*user.User, error) {
	var (
		u                    userRecord
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&u.id, &u.email, &u.name, &u.phone, &u.hash, &u.role, &createdAt, &updatedAt); err != nil {
		return nil, infra.WrapPgErr(msg, err)
	}
	return u.toDomain(createdAt.UTC(), updatedAt.UTC())
}

type userRecord struct {
	id                             uuid.UUID
	email, name, phone, hash, role string
}

func (u userRecord) toDomain(createdAt, updatedAt time.Time) (*user.User, error) {
	email, err := user.NewEmail(u.email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	name, err := user.NewName(u.name)
	if err != nil {
		return nil, infra.WrapRepoErr("stored name is invalid", err)
	}
	phone, err := user.NewPhone(u.phone)
	if err != nil {
		return nil, infra.WrapRepoErr("stored phone is invalid", err)
	}
	role, err := user.NewRole(u.role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored role is invalid", err)
	}
	return user.ReconstructUser(u.id, email, name, phone, u.hash, role, createdAt, updatedAt), nil
}
