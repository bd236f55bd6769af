package kernel

import (
	"fmt"

	"textile/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative exact decimal amount. Prices on orders and costs in the
// ledger are Money; differences such as margins may go negative and are plain decimals.
//
// The zero value is a valid amount of 0.
type Money struct {
	amount decimal.Decimal
}

// MaxMoney is the largest amount a numeric(12,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// NewMoney validates that amount lies in [0, MaxMoney] and has at most two
// decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"money", amount.String(), "0", MaxMoney.String(),
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	if amount.GreaterThan(MaxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("money", amount.String(), "0", MaxMoney.String())
	}
	if !amount.Equal(amount.Round(2)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%s has more than two decimal places", amount.String()))
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal literal such as "10.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

// MustMoney is MoneyFromString that panics on invalid input.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns an amount of 0.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Decimal exposes the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other. The result may be negative, so it is not Money.
func (m Money) Sub(other Money) decimal.Decimal {
	return m.amount.Sub(other.amount)
}

// IsEqual compares amounts numerically, so 10 and 10.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
