package kernel

import (
	"fmt"

	"carveyor/internal/pkg/errs"
)

// Money is a monetary amount in currency minor units. Amounts in the domain
// are never negative; directions (charge vs. credit) are expressed by the
// ledger entry kind, not by sign.
type Money int64

// NewMoney creates a Money amount, rejecting negative values.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money(amount), nil
}

// Int64 returns the raw amount in minor units.
func (m Money) Int64() int64 {
	return int64(m)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m < other
}
