package booking

import (
	"errors"
	"math/big"
	"time"

	"station-booking/internal/domain/money"
)

var ErrPriceOutOfRange = errors.New("booking price exceeds the representable range")

type PriceCalculator interface {
	CalculatePrice(hourlyRate money.Money, interval Interval) (money.Money, error)
}

// HourlyPriceCalculator charges rate × hours rounded half-up to the cent.
type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

var nanosPerHour = big.NewInt(int64(time.Hour))

func (pc *HourlyPriceCalculator) CalculatePrice(hourlyRate money.Money, interval Interval) (money.Money, error) {
	// cents = rateCents * nanos / nanosPerHour, exact in integers
	num := new(big.Int).Mul(big.NewInt(hourlyRate.Cents()), big.NewInt(int64(interval.Duration())))
	quo, rem := new(big.Int).QuoRem(num, nanosPerHour, new(big.Int))

	// round half away from zero
	twiceRem := new(big.Int).Mul(rem.Abs(rem), big.NewInt(2))
	if twiceRem.Cmp(nanosPerHour) >= 0 {
		if num.Sign() < 0 {
			quo.Sub(quo, big.NewInt(1))
		} else {
			quo.Add(quo, big.NewInt(1))
		}
	}
	if !quo.IsInt64() || quo.Sign() < 0 {
		return money.Money{}, ErrPriceOutOfRange
	}
	return money.FromCents(quo.Int64()), nil
}
