package request

import (
	"encoding/json"

	"station-booking/internal/domain/money"
	"station-booking/internal/domain/resource"
	"station-booking/internal/pkg/patch"
)

type Specs struct {
	CPU     string `json:"cpu"`
	GPU     string `json:"gpu"`
	RAM     string `json:"ram"`
	Storage string `json:"storage"`
	Monitor string `json:"monitor"`
}

func (s Specs) toDomain() resource.Specs {
	return resource.NewSpecs(s.CPU, s.GPU, s.RAM, s.Storage, s.Monitor)
}

// HourlyRate accepts a JSON number or numeric string with at most two decimals.
type CreateResourceRequest struct {
	Name       string      `json:"name" binding:"required"`
	Category   string      `json:"category" binding:"required"`
	Specs      Specs       `json:"specs"`
	ImageURL   string      `json:"imageUrl"`
	HourlyRate json.Number `json:"hourlyRate" binding:"required"`
	Status     string      `json:"status"`
}

func (r CreateResourceRequest) ToDomain() (resource.Params, error) {
	category, err := resource.NewCategory(r.Category)
	if err != nil {
		return resource.Params{}, err
	}
	rate, err := money.Parse(r.HourlyRate.String())
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
		Specs:      r.Specs.toDomain(),
		ImageURL:   r.ImageURL,
		HourlyRate: rate,
		Status:     status,
	}, nil
}

// UpdateResourceRequest is a partial update: absent fields stay unchanged.
type UpdateResourceRequest struct {
	Name       *string      `json:"name"`
	Category   *string      `json:"category"`
	Specs      *Specs       `json:"specs"`
	ImageURL   *string      `json:"imageUrl"`
	HourlyRate *json.Number `json:"hourlyRate"`
	Status     *string      `json:"status"`
}

func (r UpdateResourceRequest) IsEmpty() bool {
	return patch.Empty(r.Name, r.Category, r.Specs, r.ImageURL, r.HourlyRate, r.Status)
}

func (r UpdateResourceRequest) ToDomain() (resource.Patch, error) {
	p := resource.Patch{Name: r.Name, ImageURL: r.ImageURL}
	if r.Category != nil {
		c, err := resource.NewCategory(*r.Category)
		if err != nil {
			return resource.Patch{}, err
		}
		p.Category = &c
	}
	if r.Specs != nil {
		s := r.Specs.toDomain()
		p.Specs = &s
	}
	if r.HourlyRate != nil {
		m, err := money.Parse(r.HourlyRate.String())
		if err != nil {
			return resource.Patch{}, err
		}
		p.HourlyRate = &m
	}
	if r.Status != nil {
		st, err := resource.NewStatus(*r.Status)
		if err != nil {
			return resource.Patch{}, err
		}
		p.Status = &st
	}
	return p, nil
}

type SetResourceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r SetResourceStatusRequest) ToDomain() (resource.Status, error) {
	return resource.NewStatus(r.Status)
}
