package response

import (
	"time"

	"station-booking/internal/domain/money"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SpecsResponse struct {
	CPU     string `json:"cpu"`
	GPU     string `json:"gpu"`
	RAM     string `json:"ram"`
	Storage string `json:"storage"`
	Monitor string `json:"monitor"`
}

type ResourceResponse struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Category        string        `json:"category"`
	Specs           SpecsResponse `json:"specs"`
	ImageURL        string        `json:"imageUrl"`
	HourlyRate      string        `json:"hourlyRate"`
	HourlyRateCents int64         `json:"hourlyRateCents"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func FromResourceView(v *queries.ResourceView) ResourceResponse {
	var out ResourceResponse
	_ = copier.Copy(&out, v)
	out.Specs = SpecsResponse(v.Specs)
	out.HourlyRate = money.FromCents(v.HourlyRateCents).String()
	return out
}

func FromResourceViews(vs []*queries.ResourceView) []ResourceResponse {
	out := make([]ResourceResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromResourceView(v))
	}
	return out
}

type CreatedResourceResponse struct {
	ID uuid.UUID `json:"id"`
}

type BusySlotResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type AvailabilityResponse struct {
	ResourceID uuid.UUID          `json:"resourceId"`
	Status     string             `json:"status"`
	From       time.Time          `json:"from"`
	To         time.Time          `json:"to"`
	Busy       []BusySlotResponse `json:"busy"`
}

func FromAvailabilityView(v *queries.AvailabilityView) AvailabilityResponse {
	out := AvailabilityResponse{
		ResourceID: v.ResourceID,
		Status:     v.Status,
		From:       v.From,
		To:         v.To,
		Busy:       make([]BusySlotResponse, 0, len(v.Busy)),
	}
	for _, s := range v.Busy {
		out.Busy = append(out.Busy, BusySlotResponse{StartTime: s.Start, EndTime: s.End})
	}
	return out
}
