package domain

import (
	"errors"
	"fmt"
	"math"
)

// Money is an amount in minor currency units (cents).
type Money int64

// NoPriceCap is the upper price bound that excludes nobody.
const NoPriceCap Money = math.MaxInt64

var (
	ErrInvalidDuration = errors.New("duration must be a positive number of hours")
	ErrInvalidRate     = errors.New("hourly rate must be positive")
	ErrPriceOverflow   = errors.New("total price overflows")
)

// ComputePrice returns rate * hours exactly. The result is frozen on the
// booking at request time.
func ComputePrice(rate Money, hours int) (Money, error) {
	if hours <= 0 {
		return 0, ErrInvalidDuration
	}
	if rate <= 0 {
		return 0, ErrInvalidRate
	}
	if int64(rate) > math.MaxInt64/int64(hours) {
		return 0, ErrPriceOverflow
	}
	return rate * Money(hours), nil
}

// String renders the amount as major.minor, e.g. "150.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
