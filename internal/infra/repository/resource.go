package repository

import (
	"context"
	"time"

	"station-booking/internal/domain/money"
	"station-booking/internal/domain/resource"
	"station-booking/internal/infra"
	"station-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resourceColumns = `id, name, category, cpu, gpu, ram, storage, monitor, image_url, hourly_rate_cents, status, created_at, updated_at`

type ResourceRepository struct {
	dbtx db.DBTX
}

func NewResourceRepository(dbtx db.DBTX) *ResourceRepository {
	return &ResourceRepository{dbtx: dbtx}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	specs := res.Specs()
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		res.ID(), res.Name(), res.Category().String(),
		specs.CPU, specs.GPU, specs.RAM, specs.Storage, specs.Monitor,
		res.ImageURL(), res.HourlyRate().Cents(), res.Status().String(),
		res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapPgErr("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	specs := res.Specs()
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE resources
		SET name = $2, category = $3, cpu = $4, gpu = $5, ram = $6, storage = $7, monitor = $8,
		    image_url = $9, hourly_rate_cents = $10, status = $11, updated_at = $12
		WHERE id = $1`,
		res.ID(), res.Name(), res.Category().String(),
		specs.CPU, specs.GPU, specs.RAM, specs.Storage, specs.Monitor,
		res.ImageURL(), res.HourlyRate().Cents(), res.Status().String(),
		res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapPgErr("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete fails with KindForeignKeyViolated while any booking references the resource.
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return infra.WrapPgErr("failed to delete resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.find(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id)
}

func (r *ResourceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.find(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1 FOR UPDATE`, id)
}

func (r *ResourceRepository) find(ctx context.Context, query string, id uuid.UUID) (*resource.Resource, error) {
	res, err := scanResource(r.dbtx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.WrapPgErr("failed to find resource", err)
	}
	return res, nil
}

func scanResource(row pgx.Row) (*resource.Resource, error) {
	var (
		id                              uuid.UUID
		name, category, imageURL        string
		cpu, gpu, ram, storage, monitor string
		rateCents                       int64
		status                          string
		createdAt, updatedAt            time.Time
	)
	err := row.Scan(
		&id, &name, &category,
		&cpu, &gpu, &ram, &storage, &monitor,
		&imageURL, &rateCents, &status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return resource.ReconstructResource(id, resource.Params{
		Name:       name,
		Category:   resource.Category(category),
		Specs:      resource.NewSpecs(cpu, gpu, ram, storage, monitor),
		ImageURL:   imageURL,
		HourlyRate: money.FromCents(rateCents),
		Status:     resource.Status(status),
	}, createdAt.UTC(), updatedAt.UTC()), nil
}
