package commands

import (
	"context"
	"log/slog"

	"station-booking/internal/domain/policy"
	"station-booking/internal/domain/user"
	reqdto "station-booking/internal/handler/dto/request"
	"station-booking/internal/infra"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errs.New("user not found")
	ErrNotProfileOwner    = errs.New("users may only edit their own profile")
	ErrUserAdminForbidden = errs.New("only administrators may delete users")
	ErrUserHasBookings    = errs.New("user has bookings and cannot be deleted")
	ErrDeleteSelf         = errs.New("administrators cannot delete their own account")
)

type UserCommands interface {
	// UpdateProfile returns the user as committed.
	UpdateProfile(ctx context.Context, actor shared.Actor, id uuid.UUID, req reqdto.UpdateUserRequest) (*user.User, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type userUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUserUseCase(uow shared.UnitOfWork, clk clock.Clock) UserCommands {
	return &userUseCaseImpl{uow: uow, clock: clk}
}

// UpdateProfile checks permission before existence, so a user trying other
// ids only ever sees Forbidden.
func (uc *userUseCaseImpl) UpdateProfile(ctx context.Context, actor shared.Actor, id uuid.UUID, req reqdto.UpdateUserRequest) (*user.User, error) {
	if !policy.CanEditUser(actor.Role, actor.UserID, id) {
		return nil, errs.Mark(ErrNotProfileOwner, errs.ErrForbidden)
	}
	if req.IsEmpty() {
		return nil, errs.Mark(ErrEmptyPatch, errs.ErrValidation)
	}
	p, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	var updated *user.User
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, derr := tx.Users().FindByIDForUpdate(ctx, id)
		if derr != nil {
			return markMissing(derr, ErrUserNotFound)
		}
		u.UpdateProfile(p, uc.clock.Now())
		if derr = tx.Users().UpdateProfile(ctx, u); derr != nil {
			return shared.MarkRepoErr(derr)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete refuses while bookings reference the user; their history is kept.
func (uc *userUseCaseImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !policy.CanManageUsers(actor.Role) {
		return errs.Mark(ErrUserAdminForbidden, errs.ErrForbidden)
	}
	if actor.UserID == id {
		return errs.Mark(ErrDeleteSelf, errs.ErrConflict)
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Users().FindByIDForUpdate(ctx, id); derr != nil {
			return markMissing(derr, ErrUserNotFound)
		}
		derr := tx.Users().Delete(ctx, id)
		if infra.IsKind(derr, infra.KindForeignKeyViolated) {
			return errs.Mark(ErrUserHasBookings, errs.ErrConflict)
		}
		return shared.MarkRepoErr(derr)
	})
	if err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id, "by", actor.UserID)
	return nil
}
