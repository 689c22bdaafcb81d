package kernel

import (
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
)

// Money is a non-negative amount in the smallest currency unit. All COD
// arithmetic is integral so collected and transferred sums compare exactly
// and are never rounded.
type Money struct {
	amount int64
}

// Zero is the empty amount.
var Zero = Money{}

// NewMoney returns an amount of minor units, rejecting negatives.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount, int64(0), int64(math.MaxInt64))
	}
	return Money{amount: amount}, nil
}

// MustMoney is NewMoney for constants and tests.
func MustMoney(amount int64) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount > other.amount
}

// Add returns m + other. It fails on overflow instead of wrapping.
func (m Money) Add(other Money) (Money, error) {
	if other.amount > math.MaxInt64-m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d + %d overflows", m.amount, other.amount),
		)
	}
	return Money{amount: m.amount + other.amount}, nil
}

// Sub returns m - other. It fails when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount > m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d - %d is negative", m.amount, other.amount),
		)
	}
	return Money{amount: m.amount - other.amount}, nil
}

// Multiply returns m * qty for line item totals.
func (m Money) Multiply(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", qty, 0, math.MaxInt32)
	}
	if qty != 0 && m.amount > math.MaxInt64/int64(qty) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d * %d overflows", m.amount, qty),
		)
	}
	return Money{amount: m.amount * int64(qty)}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
