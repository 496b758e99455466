package booking

import (
	"errors"
	"time"

	"station-booking/internal/domain/money"
	"station-booking/internal/domain/resource"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrAlreadyTerminal = errors.New("booking is already cancelled or completed")
)

type Booking struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	resourceID uuid.UUID
	interval   Interval
	status     Status
	totalPrice money.Money
	hourlyRate money.Money
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking builds a confirmed booking from an admission decision. The
// resource's current rate is copied, so later rate changes do not reach it.
func NewBooking(ownerID uuid.UUID, res *resource.Resource, d Decision, now time.Time) *Booking {
	return &Booking{
		id:         uuid.New(),
		ownerID:    ownerID,
		resourceID: res.ID(),
		interval:   d.Interval,
		status:     StatusConfirmed,
		totalPrice: d.Price,
		hourlyRate: res.HourlyRate(),
		createdAt:  now,
		updatedAt:  now,
	}
}

func ReconstructBooking(
	id, ownerID, resourceID uuid.UUID,
	interval Interval,
	status Status,
	totalPrice, hourlyRate money.Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		ownerID:    ownerID,
		resourceID: resourceID,
		interval:   interval,
		status:     status,
		totalPrice: totalPrice,
		hourlyRate: hourlyRate,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// IsActive uses the stored status; an elapsed confirmed booking cannot
// overlap any admissible request anyway.
func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) EffectiveStatus(now time.Time) Status {
	return b.status.Effective(b.interval.End(), now)
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.ownerID == userID
}

// Cancel moves pending/confirmed to cancelled. Completed (including lazily
// completed) and cancelled bookings are rejected.
func (b *Booking) Cancel(now time.Time) error {
	if b.EffectiveStatus(now).IsTerminal() {
		return ErrAlreadyTerminal
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) OwnerID() uuid.UUID      { return b.ownerID }
func (b *Booking) ResourceID() uuid.UUID   { return b.resourceID }
func (b *Booking) Interval() Interval      { return b.interval }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) TotalPrice() money.Money { return b.totalPrice }
func (b *Booking) HourlyRate() money.Money { return b.hourlyRate }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
