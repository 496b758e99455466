package commands

import (
	"context"
	"log/slog"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/policy"
	reqdto "station-booking/internal/handler/dto/request"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/pkg/keylock"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound = errs.New("resource not found")
	ErrBookingNotFound  = errs.New("booking not found")
	ErrNotBookingOwner  = errs.New("booking belongs to another user")
	ErrBookingForbidden = errs.New("role may not create bookings")
)

// Admission rejections and the kind each is reported as.
var rejectionKinds = []struct {
	reason error
	mark   error
}{
	{booking.ErrResourceUnavailable, errs.ErrResourceUnavailable},
	{booking.ErrInvalidInterval, errs.ErrInvalidInterval},
	{booking.ErrStartInPast, errs.ErrInvalidInterval},
	{booking.ErrSlotConflict, errs.ErrSlotConflict},
	{booking.ErrPriceOutOfRange, errs.ErrValidation},
}

// BookingResult is the booking as committed, so callers need no follow-up read.
type BookingResult struct {
	BookingID    uuid.UUID
	Booking      *booking.Booking
	ResourceName string
}

type BookingCommands interface {
	Create(ctx context.Context, actor shared.Actor, req reqdto.CreateBookingRequest) (*BookingResult, error)
	Cancel(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*BookingResult, error)
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	locks    *keylock.Arena[uuid.UUID]
	resolver *booking.Resolver
	clock    clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, locks *keylock.Arena[uuid.UUID], resolver *booking.Resolver, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:      uow,
		locks:    locks,
		resolver: resolver,
		clock:    clk,
	}
}

// Create serializes admissions per resource: in process through the lock
// arena, across processes through the row lock and the exclusion constraint.
func (uc *bookingUseCaseImpl) Create(ctx context.Context, actor shared.Actor, req reqdto.CreateBookingRequest) (*BookingResult, error) {
	if !policy.CanCreateBooking(actor.Role) {
		return nil, errs.Mark(ErrBookingForbidden, errs.ErrForbidden)
	}

	unlock, err := uc.locks.Lock(ctx, req.ResourceID)
	if err != nil {
		// the caller gave up waiting for the resource
		return nil, errs.Mark(errs.Wrap(err, "waiting for resource lock"), errs.ErrStoreUnavailable)
	}
	defer unlock()

	var (
		created      *booking.Booking
		resourceName string
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := tx.Resources().FindByIDForUpdate(ctx, req.ResourceID)
		if derr != nil {
			return markMissing(derr, ErrResourceNotFound)
		}

		now := uc.clock.Now()
		active, derr := tx.Bookings().ListActiveByResource(ctx, res.ID(), now)
		if derr != nil {
			return shared.MarkRepoErr(derr)
		}

		decision := uc.resolver.Admit(booking.AdmissionRequest{
			Resource: res,
			Start:    req.StartTime,
			End:      req.EndTime,
			Now:      now,
			Active:   active,
		})
		if !decision.Admitted() {
			return markRejection(decision.Reason)
		}

		b := booking.NewBooking(actor.UserID, res, decision, now)
		if derr = tx.Bookings().Create(ctx, b); derr != nil {
			return shared.MarkRepoErr(derr)
		}
		if derr = tx.Events().Append(ctx, booking.NewEvent(booking.EventCreated, b, now)); derr != nil {
			return shared.MarkRepoErr(derr)
		}
		created, resourceName = b, res.Name()
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", created.ID(),
		"resource_id", created.ResourceID(),
		"user_id", actor.UserID,
		"total_cents", created.TotalPrice().Cents())
	return &BookingResult{BookingID: created.ID(), Booking: created, ResourceName: resourceName}, nil
}

// Cancel checks existence before ownership.
func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*BookingResult, error) {
	var result *BookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if derr != nil {
			return markMissing(derr, ErrBookingNotFound)
		}
		if !policy.CanCancel(actor.Role, actor.UserID, b.OwnerID()) {
			return errs.Mark(ErrNotBookingOwner, errs.ErrForbidden)
		}

		now := uc.clock.Now()
		if derr = b.Cancel(now); derr != nil {
			return errs.Mark(derr, errs.ErrAlreadyTerminal)
		}

		changed, derr := tx.Bookings().Cancel(ctx, b.ID(), now)
		if derr != nil {
			return shared.MarkRepoErr(derr)
		}
		if !changed {
			return errs.Mark(booking.ErrAlreadyTerminal, errs.ErrAlreadyTerminal)
		}
		if derr = tx.Events().Append(ctx, booking.NewEvent(booking.EventCancelled, b, now)); derr != nil {
			return shared.MarkRepoErr(derr)
		}

		res, derr := tx.Resources().FindByID(ctx, b.ResourceID())
		if derr != nil {
			return shared.MarkRepoErr(derr)
		}
		result = &BookingResult{BookingID: b.ID(), Booking: b, ResourceName: res.Name()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func markRejection(reason error) error {
	for _, rk := range rejectionKinds {
		if errs.Is(reason, rk.reason) {
			return errs.Mark(reason, rk.mark)
		}
	}
	return reason
}

// markMissing replaces a repository not-found with the named sentinel.
func markMissing(err, sentinel error) error {
	err = shared.MarkRepoErr(err)
	if errs.KindOf(err) == errs.KindNotFound {
		return errs.Mark(sentinel, errs.ErrNotFound)
	}
	return err
}
