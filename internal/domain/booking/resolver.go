package booking

import (
	"errors"
	"fmt"
	"time"

	"station-booking/internal/domain/money"
	"station-booking/internal/domain/resource"
)

var (
	ErrResourceUnavailable = errors.New("resource is not available for booking")
	ErrStartInPast         = errors.New("interval must not start in the past")
	ErrSlotConflict        = errors.New("requested interval overlaps an existing booking")
	ErrIntervalTooLong     = fmt.Errorf("%w: a booking may span at most %s", ErrInvalidInterval, MaxBookingDuration)
)

// MaxBookingDuration matches the availability window cap.
const MaxBookingDuration = 31 * 24 * time.Hour

type AdmissionRequest struct {
	Resource *resource.Resource
	Start    time.Time
	End      time.Time
	Now      time.Time
	// Active holds the resource's pending/confirmed bookings.
	Active []*Booking
}

// Decision is either an admission carrying the validated interval and price,
// or a rejection carrying one of ErrResourceUnavailable, ErrInvalidInterval
// (ErrIntervalTooLong included), ErrStartInPast, ErrSlotConflict or
// ErrPriceOutOfRange.
type Decision struct {
	Interval Interval
	Price    money.Money
	Reason   error
	// Conflict is the booking that caused ErrSlotConflict.
	Conflict *Booking
}

func (d Decision) Admitted() bool {
	return d.Reason == nil
}

type Resolver struct {
	calc PriceCalculator
}

func NewResolver(calc PriceCalculator) *Resolver {
	return &Resolver{calc: calc}
}

// Admit reads only its arguments. Checks run in a fixed order:
// resource status, interval shape, overlap, then price.
func (r *Resolver) Admit(req AdmissionRequest) Decision {
	if req.Resource == nil || !req.Resource.IsAvailable() {
		return Decision{Reason: ErrResourceUnavailable}
	}

	interval, err := NewInterval(req.Start, req.End)
	if err != nil {
		return Decision{Reason: err}
	}
	if interval.Duration() > MaxBookingDuration {
		return Decision{Reason: ErrIntervalTooLong}
	}
	if interval.Start().Before(req.Now) {
		return Decision{Reason: ErrStartInPast}
	}

	for _, existing := range req.Active {
		if existing.ResourceID() != req.Resource.ID() || !existing.IsActive() {
			continue
		}
		if existing.Interval().Overlaps(interval) {
			return Decision{Interval: interval, Reason: ErrSlotConflict, Conflict: existing}
		}
	}

	price, err := r.calc.CalculatePrice(req.Resource.HourlyRate(), interval)
	if err != nil {
		return Decision{Interval: interval, Reason: err}
	}
	return Decision{Interval: interval, Price: price}
}
