package order

import (
	"errors"
	"fmt"
	"time"

	"basket/internal/core/domain/model/catalog"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrLineAlreadyExists      = errors.New("order already has a line for this product")
	ErrLineNotFound           = errors.New("order has no line for this product")
	ErrLineCollectionIsAbsent = errors.New("order line collection is absent")
	ErrQuantityIsInvalid      = errors.New("quantity must be greater than 0")
	ErrCurrencyMismatch       = errors.New("product is not priced in the order currency")
)

// Order is the basket aggregate root.
//
// Order follows these invariants:
//   - at most one line per product code
//   - every line carries the order currency
//   - the id is assigned once by storage
//   - the currency, discount rate and VAT rate never change after creation
//
// Lines are nil only for aggregates restored without their collection; NewOrder
// always starts with an empty collection.
type Order struct {
	id           int64
	client       *client.Client
	currency     catalog.Currency
	discountRate kernel.Rate
	vatRate      kernel.Rate
	status       Status
	billing      BillingInfo
	shipping     ShippingInfo
	lines        []*OrderLine
	timestamp    time.Time
	version      int

	isConstructed bool
}

// NewOrder creates an order in Initialized status with no lines.
// The VAT rate is a snapshot: later configuration changes do not reach existing orders.
//
// Example:
//
//	addr, _ := kernel.NewAddress("DE", "Berlin", "Berlin", "10115", "Wittenauer Straße")
//	billing, _ := order.NewBillingInfo(addr, order.WireTransfer, now)
//	shipping, _ := order.NewShippingInfo(addr, now)
//	o, err := order.NewOrder(buyer, eur, discount, vat, billing, shipping, now)
func NewOrder(
	owner *client.Client,
	currency catalog.Currency,
	discountRate kernel.Rate,
	vatRate kernel.Rate,
	billing BillingInfo,
	shipping ShippingInfo,
	now time.Time,
) (*Order, error) {
	return RestoreOrder(0, owner, currency, discountRate, vatRate, Initialized,
		billing, shipping, make([]*OrderLine, 0), now, 0)
}

// RestoreOrder rebuilds a stored order. Passing nil lines restores an aggregate
// without a line collection.
func RestoreOrder(
	id int64,
	owner *client.Client,
	currency catalog.Currency,
	discountRate kernel.Rate,
	vatRate kernel.Rate,
	status Status,
	billing BillingInfo,
	shipping ShippingInfo,
	lines []*OrderLine,
	timestamp time.Time,
	version int,
) (*Order, error) {
	if err := errors.Join(
		owner.Validate(),
		currency.Validate(),
		discountRate.Validate(),
		vatRate.Validate(),
		status.Validate(),
		billing.Address().Validate(),
		shipping.Address().Validate(),
	); err != nil {
		return nil, err
	}
	if id < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is negative", id))
	}

	o := &Order{
		id:            id,
		client:        owner,
		currency:      currency,
		discountRate:  discountRate,
		vatRate:       vatRate,
		status:        status,
		billing:       billing,
		shipping:      shipping,
		timestamp:     timestamp.UTC(),
		version:       version,
		isConstructed: true,
	}

	if lines != nil {
		o.lines = make([]*OrderLine, 0, len(lines))
		for _, line := range lines {
			if err := line.Validate(); err != nil {
				return nil, err
			}
			if o.findLine(line.ProductCode()) != nil {
				return nil, fmt.Errorf("%w: %s", ErrLineAlreadyExists, line.ProductCode())
			}
			o.lines = append(o.lines, line)
		}
	}

	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's identifier, zero until the order is stored.
func (o *Order) ID() int64 {
	return o.id
}

// AssignID records the identity given by storage on first insert. Once set it never changes.
func (o *Order) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", id))
	}
	if o.id != 0 && o.id != id {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("order id is immutable, already %d", o.id))
	}
	o.id = id
	return nil
}

// Client returns the client who owns the order.
func (o *Order) Client() *client.Client {
	return o.client
}

// Currency returns the currency every line is priced in.
func (o *Order) Currency() catalog.Currency {
	return o.currency
}

func (o *Order) DiscountRate() kernel.Rate {
	return o.discountRate
}

func (o *Order) VatRate() kernel.Rate {
	return o.vatRate
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

func (o *Order) BillingInfo() BillingInfo {
	return o.billing
}

func (o *Order) ShippingInfo() ShippingInfo {
	return o.shipping
}

func (o *Order) Timestamp() time.Time {
	return o.timestamp
}

// Version is the optimistic concurrency token read from storage.
func (o *Order) Version() int {
	return o.version
}

// BumpVersion is called by repositories after a successful versioned write.
func (o *Order) BumpVersion() {
	o.version++
}

// HasLineCollection distinguishes "no collection" from "zero lines".
func (o *Order) HasLineCollection() bool {
	return o.lines != nil
}

// Lines returns a copy of the line slice; the lines themselves are shared.
func (o *Order) Lines() []*OrderLine {
	if o.lines == nil {
		return nil
	}
	out := make([]*OrderLine, len(o.lines))
	copy(out, o.lines)
	return out
}

// Line returns the line for productCode or nil.
func (o *Order) Line(productCode string) *OrderLine {
	return o.findLine(productCode)
}

// AddLine appends a line for product. Adding is not an upsert: a second line for
// the same product code fails with ErrLineAlreadyExists. The unit cost is the
// product's current price; a product priced in another currency fails with
// ErrCurrencyMismatch.
func (o *Order) AddLine(product catalog.Product, quantity uint, now time.Time) (*OrderLine, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if product.CurrencyCode() != o.currency.Code() {
		return nil, fmt.Errorf("%w: %s is priced in %s, order is in %s",
			ErrCurrencyMismatch, product.Code(), product.CurrencyCode(), o.currency.Code())
	}
	if o.findLine(product.Code()) != nil {
		return nil, fmt.Errorf("%w: %s", ErrLineAlreadyExists, product.Code())
	}

	line, err := NewOrderLine(product.Code(), quantity, product.Price(), o.currency.Code(), now)
	if err != nil {
		return nil, err
	}

	if o.lines == nil {
		o.lines = make([]*OrderLine, 0, 1)
	}
	o.lines = append(o.lines, line)
	o.touch(now)
	return line, nil
}

// RemoveLine removes the single line for productCode and returns it.
func (o *Order) RemoveLine(productCode string, now time.Time) (*OrderLine, error) {
	if o.lines == nil {
		return nil, ErrLineCollectionIsAbsent
	}

	for i, line := range o.lines {
		if line.ProductCode() == productCode {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			o.touch(now)
			return line, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrLineNotFound, productCode)
}

// SetLineQuantity overwrites the quantity of the line for productCode.
func (o *Order) SetLineQuantity(productCode string, quantity uint, now time.Time) (*OrderLine, error) {
	if quantity == 0 {
		return nil, ErrQuantityIsInvalid
	}
	if o.lines == nil {
		return nil, ErrLineCollectionIsAbsent
	}

	line := o.findLine(productCode)
	if line == nil {
		return nil, fmt.Errorf("%w: %s", ErrLineNotFound, productCode)
	}
	if err := line.setQuantity(quantity, now); err != nil {
		return nil, err
	}

	o.touch(now)
	return line, nil
}

// ClearLines empties the line collection and returns the removed lines so the
// caller can delete each of them from storage.
func (o *Order) ClearLines(now time.Time) ([]*OrderLine, error) {
	if o.lines == nil {
		return nil, ErrLineCollectionIsAbsent
	}

	removed := o.lines
	o.lines = make([]*OrderLine, 0)
	o.touch(now)
	return removed, nil
}

// TransitionTo moves the order to next when the lifecycle allows it.
// Completion strategies use it; a rejected transition leaves the order unchanged.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}

	o.status = next
	o.touch(now)
	return nil
}

// Total is the sum of quantity × unit cost over all lines. Discount and VAT
// rates are not applied.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.lines {
		total = total.Add(line.Cost())
	}
	return total
}

// RoundedTotal is Total rounded by the order currency's rules.
func (o *Order) RoundedTotal() decimal.Decimal {
	return o.currency.Round(o.Total())
}

func (o *Order) findLine(productCode string) *OrderLine {
	for _, line := range o.lines {
		if line.ProductCode() == productCode {
			return line
		}
	}
	return nil
}

func (o *Order) touch(now time.Time) {
	o.timestamp = now.UTC()
}
