package readstore

import (
	"context"
	"time"

	"station-booking/internal/infra"
	"station-booking/internal/infra/db"
	"station-booking/internal/pkg/pgconv"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// analyticsSQL returns one row per figure, tagged by its first column, so the
// whole summary comes from a single snapshot.
const analyticsSQL = `
	WITH w AS (
		SELECT b.user_id, b.resource_id, r.name, b.status, b.total_price_cents,
		       lower(b.slot) AS start_at, upper(b.slot) AS end_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE ($1::timestamptz IS NULL OR lower(b.slot) >= $1)
		  AND ($2::timestamptz IS NULL OR lower(b.slot) < $2)
	), live AS (
		SELECT * FROM w WHERE status <> 'cancelled'
	)
	SELECT 'total'::text, NULL::text, NULL::uuid, NULL::text,
	       count(*)::bigint, coalesce(sum(total_price_cents), 0)::bigint,
	       count(DISTINCT user_id)::bigint, 0::float8
	FROM live
	UNION ALL
	SELECT 'cancelled', NULL, NULL, NULL, count(*), 0, 0, 0
	FROM w WHERE status = 'cancelled'
	UNION ALL
	SELECT 'day', to_char(start_at AT TIME ZONE 'UTC', 'YYYY-MM-DD'), NULL, NULL,
	       count(*), sum(total_price_cents)::bigint, 0, 0
	FROM live GROUP BY 2
	UNION ALL
	SELECT 'resource', NULL, resource_id, name,
	       count(*), sum(total_price_cents)::bigint, 0,
	       sum(extract(epoch FROM end_at - start_at))::float8 / 3600
	FROM live GROUP BY resource_id, name`

type analyticsRow struct {
	kind     string
	day      pgtype.Text
	resource pgtype.UUID
	name     pgtype.Text
	bookings int64
	revenue  int64
	users    int64
	hours    float64
}

type AnalyticsReadStore struct {
	dbtx db.DBTX
}

func NewAnalyticsReadStore(dbtx db.DBTX) *AnalyticsReadStore {
	return &AnalyticsReadStore{dbtx: dbtx}
}

func (r *AnalyticsReadStore) Summarize(ctx context.Context, from, to *time.Time) (*queries.AnalyticsView, error) {
	rows, err := r.dbtx.Query(ctx, analyticsSQL, pgconv.TimePtrToPgtype(from), pgconv.TimePtrToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to summarize bookings", err)
	}
	defer rows.Close()

	view := &queries.AnalyticsView{}
	for rows.Next() {
		var a analyticsRow
		if err := rows.Scan(&a.kind, &a.day, &a.resource, &a.name, &a.bookings, &a.revenue, &a.users, &a.hours); err != nil {
			return nil, infra.WrapRepoErr("failed to scan analytics row", err)
		}
		fold(view, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate analytics rows", err)
	}
	return view, nil
}

func fold(view *queries.AnalyticsView, a analyticsRow) {
	switch a.kind {
	case "total":
		view.TotalBookings = int(a.bookings)
		view.TotalRevenueCents = a.revenue
		view.ActiveUsers = int(a.users)
	case "cancelled":
		view.CancelledBookings = int(a.bookings)
	case "day":
		view.DailyStats = append(view.DailyStats, queries.DailyStat{
			Date:         a.day.String,
			Bookings:     int(a.bookings),
			RevenueCents: a.revenue,
		})
	case "resource":
		view.ResourceUsage = append(view.ResourceUsage, queries.ResourceUsageStat{
			ResourceID:   uuid.UUID(a.resource.Bytes),
			ResourceName: a.name.String,
			HoursBooked:  a.hours,
			Bookings:     int(a.bookings),
			RevenueCents: a.revenue,
		})
	}
}
