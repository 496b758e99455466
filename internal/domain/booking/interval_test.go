//go:build unit

package booking_test

import (
	"testing"
	"time"

	"station-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func mustInterval(t *testing.T, start, end time.Time) booking.Interval {
	t.Helper()
	i, err := booking.NewInterval(start, end)
	require.NoError(t, err)
	return i
}

func TestNewInterval(t *testing.T) {
	t.Run("end equal to start is rejected", func(t *testing.T) {
		_, err := booking.NewInterval(at(1, 0), at(1, 0))
		require.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := booking.NewInterval(at(2, 0), at(1, 0))
		require.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("converts to UTC", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		i := mustInterval(t, at(0, 0).In(tokyo), at(1, 0).In(tokyo))

		assert.Equal(t, time.UTC, i.Start().Location())
		assert.True(t, i.Start().Equal(at(0, 0)))
		assert.Equal(t, time.Hour, i.Duration())
	})
}

func TestIntervalOverlaps(t *testing.T) {
	existing := mustInterval(t, at(1, 0), at(3, 0))

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "identical", start: at(1, 0), end: at(3, 0), want: true},
		{name: "contained", start: at(1, 30), end: at(2, 0), want: true},
		{name: "contains", start: at(0, 0), end: at(4, 0), want: true},
		{name: "overlaps start", start: at(0, 30), end: at(1, 30), want: true},
		{name: "overlaps end", start: at(2, 30), end: at(3, 30), want: true},
		{name: "touches start", start: at(0, 0), end: at(1, 0), want: false},
		{name: "touches end", start: at(3, 0), end: at(4, 0), want: false},
		{name: "disjoint", start: at(5, 0), end: at(6, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := mustInterval(t, tt.start, tt.end)
			assert.Equal(t, tt.want, existing.Overlaps(candidate))
			assert.Equal(t, tt.want, candidate.Overlaps(existing))
		})
	}
}
