//go:build unit

package booking_test

import (
	"math"
	"testing"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/money"
	"station-booking/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyPriceCalculator(t *testing.T) {
	calc := booking.NewHourlyPriceCalculator()

	tests := []struct {
		name      string
		rateCents int64
		duration  time.Duration
		want      int64
	}{
		{name: "one hour", rateCents: 1000, duration: time.Hour, want: 1000},
		{name: "ninety minutes", rateCents: 1000, duration: 90 * time.Minute, want: 1500},
		{name: "half cent rounds up", rateCents: 999, duration: 90 * time.Minute, want: 1499},
		{name: "exactly half a cent", rateCents: 1, duration: 30 * time.Minute, want: 1},
		{name: "just under half a cent", rateCents: 1, duration: 29 * time.Minute, want: 0},
		{name: "twenty minutes", rateCents: 1234, duration: 20 * time.Minute, want: 411},
		{name: "one second", rateCents: 3600, duration: time.Second, want: 1},
		{name: "multi day", rateCents: 250, duration: 48 * time.Hour, want: 12000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval := mustInterval(t, base, base.Add(tt.duration))
			got, err := calc.CalculatePrice(money.FromCents(tt.rateCents), interval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Cents())
		})
	}

	t.Run("price beyond int64 is rejected instead of wrapping", func(t *testing.T) {
		interval := mustInterval(t, base, base.Add(2*time.Hour))
		_, err := calc.CalculatePrice(money.FromCents(math.MaxInt64), interval)
		assert.ErrorIs(t, err, booking.ErrPriceOutOfRange)
	})

	t.Run("largest rate over the longest booking still fits", func(t *testing.T) {
		interval := mustInterval(t, base, base.Add(booking.MaxBookingDuration))
		got, err := calc.CalculatePrice(money.FromCents(resource.MaxHourlyRateCents), interval)
		require.NoError(t, err)
		assert.Equal(t, int64(resource.MaxHourlyRateCents)*31*24, got.Cents())
	})
}
