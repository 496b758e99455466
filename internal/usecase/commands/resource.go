package commands

import (
	"context"

	"station-booking/internal/domain/policy"
	"station-booking/internal/domain/resource"
	reqdto "station-booking/internal/handler/dto/request"
	"station-booking/internal/infra"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCatalogForbidden = errs.New("only administrators may change the catalog")
	ErrResourceInUse    = errs.New("resource is referenced by bookings; set it to maintenance instead")
	ErrEmptyPatch       = errs.New("no fields to update")
)

type CreateResourceResult struct {
	ResourceID uuid.UUID
}

type ResourceCommands interface {
	Create(ctx context.Context, actor shared.Actor, req reqdto.CreateResourceRequest) (*CreateResourceResult, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req reqdto.UpdateResourceRequest) error
	SetStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, req reqdto.SetResourceStatusRequest) error
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type resourceUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache shared.ResourceCache
	clock clock.Clock
}

func NewResourceUseCase(uow shared.UnitOfWork, cache shared.ResourceCache, clk clock.Clock) ResourceCommands {
	return &resourceUseCaseImpl{uow: uow, cache: cache, clock: clk}
}

func (uc *resourceUseCaseImpl) Create(ctx context.Context, actor shared.Actor, req reqdto.CreateResourceRequest) (*CreateResourceResult, error) {
	if !policy.CanMutateCatalog(actor.Role) {
		return nil, errs.Mark(ErrCatalogForbidden, errs.ErrForbidden)
	}

	params, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	res, err := resource.NewResource(params, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.MarkRepoErr(tx.Resources().Create(ctx, res))
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return &CreateResourceResult{ResourceID: res.ID()}, nil
}

func (uc *resourceUseCaseImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req reqdto.UpdateResourceRequest) error {
	if !policy.CanMutateCatalog(actor.Role) {
		return errs.Mark(ErrCatalogForbidden, errs.ErrForbidden)
	}
	if req.IsEmpty() {
		return errs.Mark(ErrEmptyPatch, errs.ErrValidation)
	}

	p, err := req.ToDomain()
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}

	return uc.mutate(ctx, id, func(res *resource.Resource) error {
		return res.Apply(p, uc.clock.Now())
	})
}

func (uc *resourceUseCaseImpl) SetStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, req reqdto.SetResourceStatusRequest) error {
	if !policy.CanMutateCatalog(actor.Role) {
		return errs.Mark(ErrCatalogForbidden, errs.ErrForbidden)
	}

	status, err := req.ToDomain()
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}

	return uc.mutate(ctx, id, func(res *resource.Resource) error {
		return res.SetStatus(status, uc.clock.Now())
	})
}

func (uc *resourceUseCaseImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !policy.CanMutateCatalog(actor.Role) {
		return errs.Mark(ErrCatalogForbidden, errs.ErrForbidden)
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Resources().FindByIDForUpdate(ctx, id); derr != nil {
			return markMissing(derr, ErrResourceNotFound)
		}
		derr := tx.Resources().Delete(ctx, id)
		if infra.IsKind(derr, infra.KindForeignKeyViolated) {
			return errs.Mark(ErrResourceInUse, errs.ErrConflict)
		}
		return shared.MarkRepoErr(derr)
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(ctx)
	return nil
}

// mutate loads the resource under a row lock, applies fn and persists the result.
func (uc *resourceUseCaseImpl) mutate(ctx context.Context, id uuid.UUID, fn func(*resource.Resource) error) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := tx.Resources().FindByIDForUpdate(ctx, id)
		if derr != nil {
			return markMissing(derr, ErrResourceNotFound)
		}
		if derr = fn(res); derr != nil {
			return errs.Mark(derr, errs.ErrValidation)
		}
		return shared.MarkRepoErr(tx.Resources().Update(ctx, res))
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(ctx)
	return nil
}
