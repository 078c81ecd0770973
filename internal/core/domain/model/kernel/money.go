package kernel

import (
	"fmt"

	"eatify/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in the platform currency.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	return Money{amount: amount}, nil
}

func MoneyFromString(raw string) (Money, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

func MustMoney(raw string) Money {
	m, err := MoneyFromString(raw)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other, failing when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}
