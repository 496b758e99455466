package booking

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("interval end must be after its start")

// Interval is the half-open range [start, end) in UTC.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start.UTC(), end: end.UTC()}, nil
}

func (i Interval) Start() time.Time {
	return i.start
}

func (i Interval) End() time.Time {
	return i.end
}

func (i Interval) Duration() time.Duration {
	return i.end.Sub(i.start)
}

// Overlaps is false for intervals that merely touch: [a,b) and [b,c) share no instant.
func (i Interval) Overlaps(other Interval) bool {
	return i.start.Before(other.end) && other.start.Before(i.end)
}

func (i Interval) IsZero() bool {
	return i.start.IsZero() && i.end.IsZero()
}

func (i Interval) String() string {
	return "[" + i.start.Format(time.RFC3339) + "," + i.end.Format(time.RFC3339) + ")"
}
