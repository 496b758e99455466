package repository

import (
	"context"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/money"
	"station-booking/internal/infra"
	"station-booking/internal/infra/db"
	"station-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, user_id, resource_id, slot, status, total_price_cents, hourly_rate_cents, created_at, updated_at`

type BookingRepository struct {
	dbtx db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{dbtx: dbtx}
}

// Create relies on bookings_no_overlap: a racing overlapping insert fails
// with KindExclusionViolated.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID(), b.OwnerID(), b.ResourceID(),
		pgconv.Slot(b.Interval().Start(), b.Interval().End()),
		b.Status().String(), b.TotalPrice().Cents(), b.HourlyRate().Cents(),
		b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapPgErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.find(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.find(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *BookingRepository) find(ctx context.Context, query string, id uuid.UUID) (*booking.Booking, error) {
	b, err := scanBooking(r.dbtx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.WrapPgErr("failed to find booking", err)
	}
	return b, nil
}

// ListActiveByResource returns pending/confirmed bookings ending after since, by start.
func (r *BookingRepository) ListActiveByResource(ctx context.Context, resourceID uuid.UUID, since time.Time) ([]*booking.Booking, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE resource_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND upper(slot) > $2
		ORDER BY lower(slot)`,
		resourceID, since,
	)
	if err != nil {
		return nil, infra.WrapPgErr("failed to list active bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapPgErr("failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to iterate bookings", err)
	}
	return out, nil
}

// Cancel reports false when the booking was no longer cancellable at the given time.
func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE bookings
		SET status = 'cancelled', updated_at = $2
		WHERE id = $1
		  AND status IN ('pending', 'confirmed')
		  AND upper(slot) > $2`,
		id, at,
	)
	if err != nil {
		return false, infra.WrapPgErr("failed to cancel booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, ownerID, resourceID uuid.UUID
		slot                    pgtype.Range[pgtype.Timestamptz]
		status                  string
		totalCents, rateCents   int64
		createdAt, updatedAt    time.Time
	)
	err := row.Scan(&id, &ownerID, &resourceID, &slot, &status, &totalCents, &rateCents, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	start, end, err := pgconv.SlotBounds(slot)
	if err != nil {
		return nil, err
	}
	interval, err := booking.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, ownerID, resourceID,
		interval,
		booking.Status(status),
		money.FromCents(totalCents), money.FromCents(rateCents),
		createdAt.UTC(), updatedAt.UTC(),
	), nil
}
