package catalog

import (
	"errors"
	"fmt"
	"strings"

	"basket/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a sellable catalog item identified by its code.
type Product struct {
	id           int64
	code         string
	name         string
	description  string
	price        decimal.Decimal
	currencyCode string

	isConstructed bool
}

// NewProduct validates a catalog product. Price must not be negative.
func NewProduct(id int64, code, name, description string, price decimal.Decimal, currencyCode string) (Product, error) {
	p := Product{
		id:            id,
		name:          strings.TrimSpace(name),
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setCode(code),
		p.setPrice(price),
		p.setCurrencyCode(currencyCode),
	); err != nil {
		return Product{}, err
	}

	return p, nil
}

func (p Product) Validate() error {
	if !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p Product) ID() int64 {
	return p.id
}

func (p Product) Code() string {
	return p.code
}

func (p Product) Name() string {
	return p.name
}

func (p Product) Description() string {
	return p.description
}

func (p Product) Price() decimal.Decimal {
	return p.price
}

func (p Product) CurrencyCode() string {
	return p.currencyCode
}

func (p *Product) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("product code")
	}
	p.code = code
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("product price", fmt.Errorf("%s is negative", price))
	}
	p.price = price
	return nil
}

func (p *Product) setCurrencyCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errs.NewValueIsRequiredError("product currency")
	}
	p.currencyCode = code
	return nil
}
