package repository

import (
	"context"
	"encoding/json"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/infra"
	"station-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// EventRepository is the transactional outbox for booking events.
type EventRepository struct {
	dbtx db.DBTX
}

func NewEventRepository(dbtx db.DBTX) *EventRepository {
	return &EventRepository{dbtx: dbtx}
}

func (r *EventRepository) Append(ctx context.Context, e booking.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking event", err)
	}

	_, err = r.dbtx.Exec(ctx, `
		INSERT INTO booking_events (id, event_type, booking_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Type.String(), e.BookingID, payload, e.OccurredAt,
	)
	if err != nil {
		return infra.WrapPgErr("failed to append booking event", err)
	}
	return nil
}

// FetchPending reads up to limit unpublished events in append order.
func (r *EventRepository) FetchPending(ctx context.Context, limit int) ([]booking.Event, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT payload
		FROM booking_events
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, infra.WrapPgErr("failed to fetch pending events", err)
	}
	defer rows.Close()

	var events []booking.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, infra.WrapPgErr("failed to scan booking event", err)
		}
		var e booking.Event
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to iterate booking events", err)
	}
	return events, nil
}

func (r *EventRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	pgIDs := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		pgIDs[i] = pgtype.UUID{Bytes: id, Valid: true}
	}

	_, err := r.dbtx.Exec(ctx, `UPDATE booking_events SET published_at = $2 WHERE id = ANY($1)`, pgIDs, at)
	if err != nil {
		return infra.WrapPgErr("failed to mark events published", err)
	}
	return nil
}
