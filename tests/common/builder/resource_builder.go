//go:build unit || e2e

package builder

import (
	"encoding/json"
	"time"

	"station-booking/internal/domain/money"
	"station-booking/internal/domain/resource"
	reqdto "station-booking/internal/handler/dto/request"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID              uuid.UUID
	Name            string
	Category        string
	CPU             string
	GPU             string
	RAM             string
	Storage         string
	Monitor         string
	ImageURL        string
	HourlyRateCents int64
	Status          string
	CreatedAt       time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:              uuid.New(),
		Name:            "Station A-01",
		Category:        "gaming",
		CPU:             "Ryzen 7 7800X3D",
		GPU:             "RTX 4070",
		RAM:             "32GB",
		Storage:         "1TB NVMe",
		Monitor:         "27\" 165Hz",
		ImageURL:        "https://example.com/a01.png",
		HourlyRateCents: 1000,
		Status:          "available",
		CreatedAt:       fixedNow,
	}
}

func (r *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(r)
	return r
}

func (r *ResourceBuilder) params() (resource.Params, error) {
	category, err := resource.NewCategory(r.Category)
	if err != nil {
		return resource.Params{}, err
	}
	var status resource.Status
	if r.Status != "" {
		if status, err = resource.NewStatus(r.Status); err != nil {
			return resource.Params{}, err
		}
	}
	return resource.Params{
		Name:       r.Name,
		Category:   category,
		Specs:      resource.NewSpecs(r.CPU, r.GPU, r.RAM, r.Storage, r.Monitor),
		ImageURL:   r.ImageURL,
		HourlyRate: money.FromCents(r.HourlyRateCents),
		Status:     status,
	}, nil
}

// BuildDomain validates through NewResource and keeps the builder's ID.
func (r *ResourceBuilder) BuildDomain() (*resource.Resource, error) {
	p, err := r.params()
	if err != nil {
		return nil, err
	}
	created, err := resource.NewResource(p, r.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = created.Status()
	return resource.ReconstructResource(r.ID, p, r.CreatedAt, r.CreatedAt), nil
}

func (r *ResourceBuilder) MustBuildDomain() *resource.Resource {
	res, err := r.BuildDomain()
	if err != nil {
		panic(err)
	}
	return res
}

func (r *ResourceBuilder) BuildView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Specs: queries.SpecsView{
			CPU:     r.CPU,
			GPU:     r.GPU,
			RAM:     r.RAM,
			Storage: r.Storage,
			Monitor: r.Monitor,
		},
		ImageURL:        r.ImageURL,
		HourlyRateCents: r.HourlyRateCents,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.CreatedAt,
	}
}

func (r *ResourceBuilder) BuildCreateDTO() reqdto.CreateResourceRequest {
	return reqdto.CreateResourceRequest{
		Name:     r.Name,
		Category: r.Category,
		Specs: reqdto.Specs{
			CPU:     r.CPU,
			GPU:     r.GPU,
			RAM:     r.RAM,
			Storage: r.Storage,
			Monitor: r.Monitor,
		},
		ImageURL:   r.ImageURL,
		HourlyRate: json.Number(money.FromCents(r.HourlyRateCents).String()),
		Status:     r.Status,
	}
}

// Fluent builder methods
func (r *ResourceBuilder) WithID(id uuid.UUID) *ResourceBuilder {
	r.ID = id
	return r
}

func (r *ResourceBuilder) WithName(name string) *ResourceBuilder {
	r.Name = name
	return r
}

func (r *ResourceBuilder) WithCategory(category string) *ResourceBuilder {
	r.Category = category
	return r
}

func (r *ResourceBuilder) WithHourlyRateCents(cents int64) *ResourceBuilder {
	r.HourlyRateCents = cents
	return r
}

func (r *ResourceBuilder) WithStatus(status string) *ResourceBuilder {
	r.Status = status
	return r
}

func (r *ResourceBuilder) WithImageURL(url string) *ResourceBuilder {
	r.ImageURL = url
	return r
}

func (r *ResourceBuilder) InMaintenance() *ResourceBuilder {
	r.Status = "maintenance"
	return r
}
