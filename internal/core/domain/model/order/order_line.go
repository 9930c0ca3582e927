package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"basket/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrOrderLineIsNotConstructed = errors.New("OrderLine must be created via NewOrderLine constructor")

// OrderLine is one product on an order. UnitCost and CurrencyCode are snapshots
// taken when the line was added; later catalog price changes do not affect them.
type OrderLine struct {
	id           int64
	productCode  string
	quantity     uint
	unitCost     decimal.Decimal
	currencyCode string
	timestamp    time.Time

	isConstructed bool
}

// NewOrderLine creates an unsaved line. Quantity is taken as given.
func NewOrderLine(productCode string, quantity uint, unitCost decimal.Decimal, currencyCode string, timestamp time.Time) (*OrderLine, error) {
	return RestoreOrderLine(0, productCode, quantity, unitCost, currencyCode, timestamp)
}

// RestoreOrderLine rebuilds a stored line.
func RestoreOrderLine(
	id int64,
	productCode string,
	quantity uint,
	unitCost decimal.Decimal,
	currencyCode string,
	timestamp time.Time,
) (*OrderLine, error) {
	productCode = strings.TrimSpace(productCode)
	if productCode == "" {
		return nil, errs.NewValueIsRequiredError("product code")
	}
	if unitCost.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("unit cost", fmt.Errorf("%s is negative", unitCost))
	}
	if strings.TrimSpace(currencyCode) == "" {
		return nil, errs.NewValueIsRequiredError("line currency")
	}

	return &OrderLine{
		id:            id,
		productCode:   productCode,
		quantity:      quantity,
		unitCost:      unitCost,
		currencyCode:  currencyCode,
		timestamp:     timestamp.UTC(),
		isConstructed: true,
	}, nil
}

func (l *OrderLine) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrOrderLineIsNotConstructed
	}
	return nil
}

func (l *OrderLine) ID() int64 {
	return l.id
}

// AssignID records the identity given by storage. It can only be set once.
func (l *OrderLine) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order line id", fmt.Errorf("%d is not positive", id))
	}
	if l.id != 0 && l.id != id {
		return errs.NewValueIsInvalidErrorWithCause("order line id", fmt.Errorf("already assigned %d", l.id))
	}
	l.id = id
	return nil
}

func (l *OrderLine) ProductCode() string {
	return l.productCode
}

func (l *OrderLine) Quantity() uint {
	return l.quantity
}

func (l *OrderLine) UnitCost() decimal.Decimal {
	return l.unitCost
}

func (l *OrderLine) CurrencyCode() string {
	return l.currencyCode
}

func (l *OrderLine) Timestamp() time.Time {
	return l.timestamp
}

// Cost is quantity × unit cost.
func (l *OrderLine) Cost() decimal.Decimal {
	return l.unitCost.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l *OrderLine) setQuantity(quantity uint, now time.Time) error {
	if quantity == 0 {
		return ErrQuantityIsInvalid
	}
	l.quantity = quantity
	l.timestamp = now.UTC()
	return nil
}
