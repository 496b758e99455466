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

const bookingViewSelect = `
	SELECT b.id, b.user_id, b.resource_id, r.name, lower(b.slot), upper(b.slot),
	       b.status, b.total_price_cents, b.hourly_rate_cents, b.created_at, b.updated_at
	FROM bookings b
	JOIN resources r ON r.id = b.resource_id`

// effectiveStatusSQL mirrors booking.Status.Effective; $4 is the evaluation time.
const effectiveStatusSQL = `CASE WHEN b.status = 'confirmed' AND upper(b.slot) <= $4 THEN 'completed' ELSE b.status END`

type BookingReadStore struct {
	dbtx db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{dbtx: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.dbtx.QueryRow(ctx, bookingViewSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

// List pages newest first on (created_at, id).
func (r *BookingReadStore) List(ctx context.Context, f queries.BookingFilter, after *queries.Keyset, limit int) ([]*queries.BookingView, error) {
	var status *string
	if f.Status != nil {
		s := f.Status.String()
		status = &s
	}
	afterAt := pgtype.Timestamptz{}
	afterID := pgtype.UUID{}
	if after != nil {
		afterAt = pgconv.TimeToPgtype(after.CreatedAt)
		afterID = pgtype.UUID{Bytes: after.ID, Valid: true}
	}

	rows, err := r.dbtx.Query(ctx, bookingViewSelect+`
		WHERE ($1::uuid IS NULL OR b.user_id = $1)
		  AND ($2::uuid IS NULL OR b.resource_id = $2)
		  AND ($3::text IS NULL OR `+effectiveStatusSQL+` = $3)
		  AND ($5::timestamptz IS NULL OR (b.created_at, b.id) < ($5, $6::uuid))
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $7`,
		pgconv.UUIDPtrToPgtype(f.OwnerID),
		pgconv.UUIDPtrToPgtype(f.ResourceID),
		pgconv.StringPtrToPgtype(status),
		f.Now,
		afterAt,
		afterID,
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return collectBookingViews(rows)
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	defer rows.Close()

	out := []*queries.BookingView{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return out, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.ResourceID, &v.ResourceName, &v.Start, &v.End,
		&v.Status, &v.TotalPriceCents, &v.HourlyRateCents, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Start, v.End = v.Start.UTC(), v.End.UTC()
	v.CreatedAt, v.UpdatedAt = v.CreatedAt.UTC(), v.UpdatedAt.UTC()
	return &v, nil
}
