package kernel

import (
	"errors"

	"basket/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrRateIsNotConstructed = errors.New("Rate must be created via NewRate constructor")

// Rate is a fraction between 0 and 1 inclusive, e.g. 0.10 for a 10% discount.
type Rate struct {
	value decimal.Decimal

	isConstructed bool
}

// NewRate rejects values outside [0, 1].
func NewRate(paramName string, value decimal.Decimal) (Rate, error) {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
		return Rate{}, errs.NewValueIsOutOfRangeError(paramName, value.String(), 0, 1)
	}

	return Rate{value: value, isConstructed: true}, nil
}

// ZeroRate returns a valid rate of 0.
func ZeroRate() Rate {
	return Rate{value: decimal.Zero, isConstructed: true}
}

func (r Rate) Validate() error {
	if !r.isConstructed {
		return ErrRateIsNotConstructed
	}
	return nil
}

func (r Rate) Decimal() decimal.Decimal {
	return r.value
}

func (r Rate) IsZero() bool {
	return r.value.IsZero()
}

func (r Rate) String() string {
	return r.value.String()
}
