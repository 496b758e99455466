//go:build unit || e2e

package builder

import (
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/money"
	reqdto "station-booking/internal/handler/dto/request"
	"station-booking/internal/usecase/commands"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	ResourceID      uuid.UUID
	ResourceName    string
	Start           time.Time
	End             time.Time
	Status          string
	TotalPriceCents int64
	HourlyRateCents int64
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := fixedNow.Add(24 * time.Hour)
	return &BookingBuilder{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		ResourceID:      uuid.New(),
		ResourceName:    "Station A-01",
		Start:           start,
		End:             start.Add(2 * time.Hour),
		Status:          "confirmed",
		TotalPriceCents: 2000,
		HourlyRateCents: 1000,
		CreatedAt:       fixedNow,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	interval, err := booking.NewInterval(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	status, err := booking.NewStatus(b.Status)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		b.ID, b.OwnerID, b.ResourceID,
		interval,
		status,
		money.FromCents(b.TotalPriceCents), money.FromCents(b.HourlyRateCents),
		b.CreatedAt, b.CreatedAt,
	), nil
}

func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		ResourceID:      b.ResourceID,
		ResourceName:    b.ResourceName,
		Start:           b.Start,
		End:             b.End,
		Status:          b.Status,
		TotalPriceCents: b.TotalPriceCents,
		HourlyRateCents: b.HourlyRateCents,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

// BuildResult is what a booking command returns after commit.
func (b *BookingBuilder) BuildResult() *commands.BookingResult {
	return &commands.BookingResult{BookingID: b.ID, Booking: b.MustBuildDomain(), ResourceName: b.ResourceName}
}

func (b *BookingBuilder) BuildCreateDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ResourceID: b.ResourceID,
		StartTime:  b.Start,
		EndTime:    b.End,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithOwner(ownerID uuid.UUID) *BookingBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithResource(resourceID uuid.UUID) *BookingBuilder {
	b.ResourceID = resourceID
	return b
}

func (b *BookingBuilder) WithInterval(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithTotalPriceCents(cents int64) *BookingBuilder {
	b.TotalPriceCents = cents
	return b
}
