package readstore

import (
	"context"
	"time"

	"station-booking/internal/infra"
	"station-booking/internal/infra/db"
	"station-booking/internal/pkg/pgconv"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resourceViewColumns = `id, name, category, cpu, gpu, ram, storage, monitor, image_url, hourly_rate_cents, status, created_at, updated_at`

type ResourceReadStore struct {
	dbtx db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{dbtx: dbtx}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	row := r.dbtx.QueryRow(ctx, `SELECT `+resourceViewColumns+` FROM resources WHERE id = $1`, id)
	view, err := scanResourceView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return view, nil
}

func (r *ResourceReadStore) List(ctx context.Context, f queries.ResourceFilter) ([]*queries.ResourceView, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT `+resourceViewColumns+`
		FROM resources
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR category = $2)
		ORDER BY name, id`,
		pgconv.StringPtrToPgtype(f.Status), pgconv.StringPtrToPgtype(f.Category),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	out := []*queries.ResourceView{}
	for rows.Next() {
		view, err := scanResourceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resources", err)
	}
	return out, nil
}

func (r *ResourceReadStore) BusySlots(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]queries.BusySlot, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT lower(slot), upper(slot)
		FROM bookings
		WHERE resource_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND slot && tstzrange($2, $3, '[)')
		ORDER BY lower(slot)`,
		resourceID, from, to,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list busy slots", err)
	}
	defer rows.Close()

	out := []queries.BusySlot{}
	for rows.Next() {
		var s queries.BusySlot
		if err := rows.Scan(&s.Start, &s.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan busy slot", err)
		}
		s.Start, s.End = s.Start.UTC(), s.End.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate busy slots", err)
	}
	return out, nil
}

func scanResourceView(row pgx.Row) (*queries.ResourceView, error) {
	var v queries.ResourceView
	err := row.Scan(
		&v.ID, &v.Name, &v.Category,
		&v.Specs.CPU, &v.Specs.GPU, &v.Specs.RAM, &v.Specs.Storage, &v.Specs.Monitor,
		&v.ImageURL, &v.HourlyRateCents, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.CreatedAt, v.UpdatedAt = v.CreatedAt.UTC(), v.UpdatedAt.UTC()
	return &v, nil
}
