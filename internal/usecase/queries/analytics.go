package queries

import (
	"context"
	"sort"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/policy"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/shared"
)

var ErrAnalyticsAccess = errs.New("analytics are restricted to administrators")

type AnalyticsQueries interface {
	Summary(ctx context.Context, actor shared.Actor, from, to *time.Time) (*AnalyticsView, error)
}

type AnalyticsReadStore interface {
	// Summarize aggregates bookings whose start lies in [from, to); nil
	// bounds are open. Cancelled bookings only count towards
	// CancelledBookings. The store does the counting, so memory use does not
	// grow with the window.
	Summarize(ctx context.Context, from, to *time.Time) (*AnalyticsView, error)
}

type analyticsQueriesImpl struct {
	store AnalyticsReadStore
}

func NewAnalyticsQueries(store AnalyticsReadStore) AnalyticsQueries {
	return &analyticsQueriesImpl{store: store}
}

func (q *analyticsQueriesImpl) Summary(ctx context.Context, actor shared.Actor, from, to *time.Time) (*AnalyticsView, error) {
	if !policy.CanReadAnalytics(actor.Role) {
		return nil, errs.Mark(ErrAnalyticsAccess, errs.ErrForbidden)
	}
	if from != nil && to != nil && !to.After(*from) {
		return nil, errs.Mark(booking.ErrInvalidInterval, errs.ErrInvalidInterval)
	}

	view, err := q.store.Summarize(ctx, from, to)
	if err != nil {
		return nil, shared.MarkRepoErr(err)
	}

	normalize(view)
	view.From, view.To = from, to
	return view, nil
}

// normalize fixes the order of the breakdowns: days ascending, resources by
// revenue descending then name.
func normalize(view *AnalyticsView) {
	if view.DailyStats == nil {
		view.DailyStats = []DailyStat{}
	}
	if view.ResourceUsage == nil {
		view.ResourceUsage = []ResourceUsageStat{}
	}
	sort.Slice(view.DailyStats, func(i, j int) bool {
		return view.DailyStats[i].Date < view.DailyStats[j].Date
	})
	sort.Slice(view.ResourceUsage, func(i, j int) bool {
		a, b := view.ResourceUsage[i], view.ResourceUsage[j]
		if a.RevenueCents != b.RevenueCents {
			return a.RevenueCents > b.RevenueCents
		}
		return a.ResourceName < b.ResourceName
	})
}
