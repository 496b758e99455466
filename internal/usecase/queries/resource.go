package queries

import (
	"context"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const MaxAvailabilityWindow = 31 * 24 * time.Hour

var (
	ErrResourceNotFound   = errs.New("resource not found")
	ErrAvailabilityWindow = errs.New("availability window must be at most 31 days")
	ErrInvalidFilter      = errs.New("invalid filter")
)

type ResourceFilter struct {
	Status   *string
	Category *string
}

// cacheKey is stable for equal filters.
func (f ResourceFilter) cacheKey() string {
	key := "list"
	if f.Status != nil {
		key += ":status=" + *f.Status
	}
	if f.Category != nil {
		key += ":category=" + *f.Category
	}
	return key
}

type ResourceQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error)
	Availability(ctx context.Context, id uuid.UUID, from, to time.Time) (*AvailabilityView, error)
}

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error)
	// BusySlots returns the active bookings of the resource overlapping [from, to), by start.
	BusySlots(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]BusySlot, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
	cache shared.ResourceCache
	clock clock.Clock
}

func NewResourceQueries(store ResourceReadStore, cache shared.ResourceCache, clk clock.Clock) ResourceQueries {
	return &resourceQueriesImpl{store: store, cache: cache, clock: clk}
}

func (q *resourceQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markNotFound(err, ErrResourceNotFound)
	}
	return view, nil
}

func (q *resourceQueriesImpl) List(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error) {
	if filter.Status != nil && *filter.Status != "available" && *filter.Status != "maintenance" {
		return nil, errs.Mark(ErrInvalidFilter, errs.ErrValidation)
	}
	if filter.Category != nil && *filter.Category != "standard" && *filter.Category != "gaming" && *filter.Category != "premium" {
		return nil, errs.Mark(ErrInvalidFilter, errs.ErrValidation)
	}

	key := filter.cacheKey()
	var cached []*ResourceView
	if q.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	views, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, shared.MarkRepoErr(err)
	}
	if views == nil {
		views = []*ResourceView{}
	}
	q.cache.Set(ctx, key, views)
	return views, nil
}

func (q *resourceQueriesImpl) Availability(ctx context.Context, id uuid.UUID, from, to time.Time) (*AvailabilityView, error) {
	window, err := booking.NewInterval(from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}
	if window.Duration() > MaxAvailabilityWindow {
		return nil, errs.Mark(ErrAvailabilityWindow, errs.ErrValidation)
	}

	res, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markNotFound(err, ErrResourceNotFound)
	}

	busy, err := q.store.BusySlots(ctx, id, window.Start(), window.End())
	if err != nil {
		return nil, shared.MarkRepoErr(err)
	}

	// elapsed confirmed bookings no longer block anything
	now := q.clock.Now()
	open := make([]BusySlot, 0, len(busy))
	for _, s := range busy {
		if s.End.After(now) {
			open = append(open, s)
		}
	}

	return &AvailabilityView{
		ResourceID: res.ID,
		Status:     res.Status,
		From:       window.Start(),
		To:         window.End(),
		Busy:       open,
	}, nil
}

// markNotFound replaces a repository not-found with the named sentinel.
func markNotFound(err, sentinel error) error {
	err = shared.MarkRepoErr(err)
	if errs.KindOf(err) == errs.KindNotFound {
		return errs.Mark(sentinel, errs.ErrNotFound)
	}
	return err
}
