package queries

import (
	"context"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/policy"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking belongs to another user")
)

type BookingListParams struct {
	Status     *string
	ResourceID *uuid.UUID
	After      *Cursor
	Limit      int
}

// BookingFilter is what the read store evaluates. Status is matched on the
// effective status as of Now.
type BookingFilter struct {
	OwnerID    *uuid.UUID
	ResourceID *uuid.UUID
	Status     *booking.Status
	Now        time.Time
}

type BookingQueries interface {
	Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actor shared.Actor, params BookingListParams) ([]*BookingView, *Cursor, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// List returns at most limit rows newest first, starting after the keyset when set.
	List(ctx context.Context, filter BookingFilter, after *Keyset, limit int) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, clock: clk}
}

// Get checks existence before ownership.
func (q *bookingQueriesImpl) Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markNotFound(err, ErrBookingNotFound)
	}
	if !policy.CanReadBooking(actor.Role, actor.UserID, view.OwnerID) {
		return nil, errs.Mark(ErrBookingAccess, errs.ErrForbidden)
	}
	return withEffectiveStatus(view, q.clock.Now()), nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor shared.Actor, params BookingListParams) ([]*BookingView, *Cursor, error) {
	now := q.clock.Now()
	filter := BookingFilter{ResourceID: params.ResourceID, Now: now}

	if !policy.CanListAll(actor.Role) {
		owner := actor.UserID
		filter.OwnerID = &owner
	}
	if params.Status != nil {
		st, err := booking.NewStatus(*params.Status)
		if err != nil {
			return nil, nil, errs.Mark(err, errs.ErrValidation)
		}
		filter.Status = &st
	}

	after, err := DecodeCursor(params.After)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrValidation)
	}

	limit := ValidateLimit(params.Limit)
	// one extra row tells whether another page exists
	rows, err := q.store.List(ctx, filter, after, limit+1)
	if err != nil {
		return nil, nil, shared.MarkRepoErr(err)
	}

	var next *Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = EncodeCursor(Keyset{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	out := make([]*BookingView, 0, len(rows))
	for _, v := range rows {
		out = append(out, withEffectiveStatus(v, now))
	}
	return out, next, nil
}

func withEffectiveStatus(v *BookingView, now time.Time) *BookingView {
	cp := *v
	cp.Status = booking.Status(v.Status).Effective(v.End, now).String()
	return &cp
}
