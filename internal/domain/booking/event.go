package booking

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated   EventType = "booking.created"
	EventCancelled EventType = "booking.cancelled"
)

func (t EventType) String() string {
	return string(t)
}

// Event is a ledger change recorded in the same transaction as the change itself.
type Event struct {
	ID              uuid.UUID  `json:"id"`
	Type            EventType  `json:"type"`
	BookingID       uuid.UUID  `json:"booking_id"`
	ResourceID      uuid.UUID  `json:"resource_id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	Start           time.Time  `json:"start"`
	End             time.Time  `json:"end"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Status          Status     `json:"status"`
	OccurredAt      time.Time  `json:"occurred_at"`
	PublishedAt     *time.Time `json:"-"`
}

func NewEvent(t EventType, b *Booking, at time.Time) Event {
	return Event{
		ID:              uuid.New(),
		Type:            t,
		BookingID:       b.ID(),
		ResourceID:      b.ResourceID(),
		OwnerID:         b.OwnerID(),
		Start:           b.Interval().Start(),
		End:             b.Interval().End(),
		TotalPriceCents: b.TotalPrice().Cents(),
		Status:          b.Status(),
		OccurredAt:      at,
	}
}
