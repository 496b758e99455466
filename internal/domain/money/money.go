package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// Money is an amount in minor units (cents).
type Money struct {
	cents int64
}

func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Parse accepts a plain decimal with at most two fractional digits, e.g. "12.5" or "12.50".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 2 {
		return Money{}, ErrInvalidAmount
	}
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return Money{}, ErrInvalidAmount
		}
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}

	if w > (math.MaxInt64-f)/100 {
		return Money{}, ErrInvalidAmount
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsPositive() bool {
	return m.cents > 0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
