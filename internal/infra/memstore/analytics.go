package memstore

import (
	"context"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type AnalyticsReadStore struct {
	s *Store
}

func NewAnalyticsReadStore(s *Store) *AnalyticsReadStore {
	return &AnalyticsReadStore{s: s}
}

// Summarize folds matching rows into running totals under the read lock.
func (r *AnalyticsReadStore) Summarize(_ context.Context, from, to *time.Time) (*queries.AnalyticsView, error) {
	view := &queries.AnalyticsView{}
	owners := make(map[uuid.UUID]struct{})
	days := make(map[string]int)
	usage := make(map[uuid.UUID]int)

	r.s.read(func(t *tables) {
		for _, row := range t.bookings {
			if from != nil && row.start.Before(*from) {
				continue
			}
			if to != nil && !row.start.Before(*to) {
				continue
			}
			if row.status == booking.StatusCancelled {
				view.CancelledBookings++
				continue
			}

			view.TotalBookings++
			view.TotalRevenueCents += row.totalCents
			owners[row.ownerID] = struct{}{}

			day := row.start.UTC().Format(time.DateOnly)
			i, ok := days[day]
			if !ok {
				i = len(view.DailyStats)
				days[day] = i
				view.DailyStats = append(view.DailyStats, queries.DailyStat{Date: day})
			}
			view.DailyStats[i].Bookings++
			view.DailyStats[i].RevenueCents += row.totalCents

			j, ok := usage[row.resourceID]
			if !ok {
				j = len(view.ResourceUsage)
				usage[row.resourceID] = j
				view.ResourceUsage = append(view.ResourceUsage, queries.ResourceUsageStat{
					ResourceID:   row.resourceID,
					ResourceName: t.resources[row.resourceID].params.Name,
				})
			}
			u := &view.ResourceUsage[j]
			u.Bookings++
			u.RevenueCents += row.totalCents
			u.HoursBooked += row.end.Sub(row.start).Hours()
		}
	})

	view.ActiveUsers = len(owners)
	return view, nil
}
