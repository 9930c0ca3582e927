package catalog

import (
	"errors"
	"fmt"
	"strings"

	"basket/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const maxRoundingDecimals = 8

var ErrCurrencyIsNotConstructed = errors.New("Currency must be created via NewCurrency constructor")

// Currency describes how amounts in a currency are displayed and rounded.
type Currency struct {
	id               int64
	code             string
	shortSign        string
	roundingDecimals int32

	isConstructed bool
}

// NewCurrency validates a catalog currency. Code is an ISO 4217 three letter code,
// roundingDecimals must be within [0, 8].
//
// Example:
//
//	eur, err := catalog.NewCurrency(1, "EUR", "€", 2)
func NewCurrency(id int64, code, shortSign string, roundingDecimals int32) (Currency, error) {
	c := Currency{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setCode(code),
		c.setShortSign(shortSign),
		c.setRoundingDecimals(roundingDecimals),
	); err != nil {
		return Currency{}, err
	}

	return c, nil
}

func (c Currency) Validate() error {
	if !c.isConstructed {
		return ErrCurrencyIsNotConstructed
	}
	return nil
}

func (c Currency) ID() int64 {
	return c.id
}

func (c Currency) Code() string {
	return c.code
}

func (c Currency) ShortSign() string {
	return c.shortSign
}

func (c Currency) RoundingDecimals() int32 {
	return c.roundingDecimals
}

// Round rounds amount half away from zero to the currency's rounding decimals.
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(c.roundingDecimals)
}

// Format renders amount rounded and suffixed with the short sign, e.g. "600.00 €".
func (c Currency) Format(amount decimal.Decimal) string {
	return fmt.Sprintf("%s %s", c.Round(amount).StringFixed(c.roundingDecimals), c.shortSign)
}

func (c *Currency) setID(id int64) error {
	if id < 0 {
		return errs.NewValueIsInvalidErrorWithCause("currency id", fmt.Errorf("%d is negative", id))
	}
	c.id = id
	return nil
}

func (c *Currency) setCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errs.NewValueIsRequiredError("currency code")
	}
	if len(code) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency code", fmt.Errorf("%q is not a three letter code", code))
	}
	c.code = code
	return nil
}

func (c *Currency) setShortSign(sign string) error {
	sign = strings.TrimSpace(sign)
	if sign == "" {
		return errs.NewValueIsRequiredError("currency sign")
	}
	c.shortSign = sign
	return nil
}

func (c *Currency) setRoundingDecimals(decimals int32) error {
	if decimals < 0 || decimals > maxRoundingDecimals {
		return errs.NewValueIsOutOfRangeError("rounding decimals", decimals, 0, maxRoundingDecimals)
	}
	c.roundingDecimals = decimals
	return nil
}
