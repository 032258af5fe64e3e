package kernel

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

const (
	// MinCommissionPercent is the lowest allowed platform commission.
	MinCommissionPercent = 0.0
	// MaxCommissionPercent is the highest allowed platform commission.
	MaxCommissionPercent = 100.0
)

// Money is a value object representing a Colombian peso amount stored as
// whole pesos. Order values and commission amounts never carry fractional
// cents, so an integer representation avoids floating point drift.
//
// The zero value is valid for derived amounts (a commission can round to 0),
// but order values must be constructed through NewMoney which enforces
// positivity.
//
// Example usage:
//
//	value, err := kernel.NewMoney(50000)
//	if err != nil {
//	    // handle non-positive amount
//	}
//	pct, _ := kernel.NewCommissionPercent(20)
//	commission := pct.CommissionFor(value) // Money{amount: 10000}
type Money struct {
	amount int64
}

// NewMoney creates a Money value from a positive whole-peso amount.
// Returns a ValueIsInvalidError when the amount is zero or negative.
func NewMoney(amount int64) (Money, error) {
	if amount <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d is not greater than 0", amount),
		)
	}
	return Money{amount: amount}, nil
}

// RestoreMoney reconstructs a Money value from persistence without the
// positivity check. Derived amounts such as commissions may legitimately be 0.
// Negative amounts are still rejected.
func RestoreMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// Amount returns the whole-peso amount.
func (m Money) Amount() int64 {
	return m.amount
}

// IsEqual compares two Money values.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount for logs and messages.
func (m Money) String() string {
	return fmt.Sprintf("$%d", m.amount)
}

// CommissionPercent is a value object for the platform commission percentage.
// The percentage is snapshotted onto each order at creation time from the
// system configuration, so later configuration changes never affect orders
// already in flight.
type CommissionPercent struct {
	value float64
}

// NewCommissionPercent creates a CommissionPercent, enforcing the 0-100 range.
// Returns a ValueIsOutOfRangeError for values outside the range.
func NewCommissionPercent(value float64) (CommissionPercent, error) {
	if value < MinCommissionPercent || value > MaxCommissionPercent {
		return CommissionPercent{}, errs.NewValueIsOutOfRangeError(
			"commissionPercent", value, MinCommissionPercent, MaxCommissionPercent,
		)
	}
	return CommissionPercent{value: value}, nil
}

// Value returns the raw percentage.
func (p CommissionPercent) Value() float64 {
	return p.value
}

// CommissionFor computes the commission retained by the platform for an order
// of the given value: round(value * percent / 100), rounded half away from
// zero to the nearest whole peso.
func (p CommissionPercent) CommissionFor(orderValue Money) Money {
	amount := int64(math.Round(float64(orderValue.Amount()) * p.value / 100))
	return Money{amount: amount}
}

// IsEqual compares two commission percentages.
func (p CommissionPercent) IsEqual(other CommissionPercent) bool {
	return p.value == other.value
}

// String formats the percentage for logs and messages.
func (p CommissionPercent) String() string {
	return fmt.Sprintf("%g%%", p.value)
}
