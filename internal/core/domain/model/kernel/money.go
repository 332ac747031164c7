package kernel

import (
	"fmt"

	"github.com/u44592/hni/internal/pkg/errs"
)

// Money is an amount in US cents. Prices and order subtotals are kept in whole
// cents so that summing line items never accumulates floating point error.
type Money int64

// NewMoney validates a non-negative amount of cents.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money is invalid", fmt.Errorf("%d cents is negative", cents))
	}
	return Money(cents), nil
}

// Cents returns the raw amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// Times multiplies the amount by a quantity.
func (m Money) Times(quantity int) Money {
	return m * Money(quantity)
}

// String renders the amount as dollars, e.g. "$7.50".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
