package response

import (
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/money"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"userId"`
	ResourceID      uuid.UUID `json:"resourceId"`
	ResourceName    string    `json:"resourceName"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
	TotalPrice      string    `json:"totalPrice"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	HourlyRateCents int64     `json:"hourlyRateCents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) BookingResponse {
	var out BookingResponse
	_ = copier.Copy(&out, v)
	out.StartTime = v.Start
	out.EndTime = v.End
	out.TotalPrice = money.FromCents(v.TotalPriceCents).String()
	return out
}

// FromBooking renders a booking a command just committed.
func FromBooking(b *booking.Booking, resourceName string) BookingResponse {
	return BookingResponse{
		ID:              b.ID(),
		OwnerID:         b.OwnerID(),
		ResourceID:      b.ResourceID(),
		ResourceName:    resourceName,
		StartTime:       b.Interval().Start(),
		EndTime:         b.Interval().End(),
		Status:          b.Status().String(),
		TotalPrice:      b.TotalPrice().String(),
		TotalPriceCents: b.TotalPrice().Cents(),
		HourlyRateCents: b.HourlyRate().Cents(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}

type BookingListResponse struct {
	Items      []BookingResponse `json:"items"`
	NextCursor *string           `json:"nextCursor"`
}

func FromBookingPage(vs []*queries.BookingView, next *queries.Cursor) BookingListResponse {
	out := BookingListResponse{Items: make([]BookingResponse, 0, len(vs))}
	for _, v := range vs {
		out.Items = append(out.Items, FromBookingView(v))
	}
	if next != nil {
		out.NextCursor = &next.After
	}
	return out
}
