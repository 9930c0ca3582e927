package commands

import (
	"errors"
	"strings"

	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"
	"basket/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrInitializeOrderCommandIsNotConstructed = errors.New(
		"InitializeOrderCommand must be created via NewInitializeOrderCommand constructor",
	)
	ErrCurrencyCodeIsRequired = errors.New("currency code is required")
)

// InitializeOrderCommand opens a new basket for a client.
// The client is reused when one with the same code is already stored; otherwise
// the supplied client is registered in the same transaction.
//
// Example:
//
//	addr, _ := kernel.NewAddress("DE", "Berlin", "Berlin", "10115", "Wittenauer Straße")
//	cmd, err := NewInitializeOrderSameAddressCommand(buyer, addr, order.WireTransfer, "EUR", decimal.RequireFromString("0.10"))
//	if err != nil {
//	    return fmt.Errorf("invalid basket data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type InitializeOrderCommand struct { //nolint:recvcheck //using for validation
	client        *client.Client
	shipping      kernel.Address
	billing       kernel.Address
	paymentMethod order.PaymentMethod
	currencyCode  string
	discountRate  kernel.Rate

	guard guard.ConstructorGuard
}

// NewInitializeOrderCommand validates every argument and joins all failures.
func NewInitializeOrderCommand(
	buyer *client.Client,
	shipping kernel.Address,
	billing kernel.Address,
	paymentMethod order.PaymentMethod,
	currencyCode string,
	discountRate decimal.Decimal,
) (InitializeOrderCommand, error) {
	cmd := InitializeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClient(buyer),
		cmd.setShipping(shipping),
		cmd.setBilling(billing),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setCurrencyCode(currencyCode),
		cmd.setDiscountRate(discountRate),
	); err != nil {
		return InitializeOrderCommand{}, err
	}

	return cmd, nil
}

// NewInitializeOrderSameAddressCommand uses address for both shipping and billing.
func NewInitializeOrderSameAddressCommand(
	buyer *client.Client,
	address kernel.Address,
	paymentMethod order.PaymentMethod,
	currencyCode string,
	discountRate decimal.Decimal,
) (InitializeOrderCommand, error) {
	return NewInitializeOrderCommand(buyer, address, address, paymentMethod, currencyCode, discountRate)
}

// Validate ensures the command was created through the constructor.
func (c InitializeOrderCommand) Validate() error {
	return c.guard.Validate(ErrInitializeOrderCommandIsNotConstructed)
}

// Client returns the client the order is opened for.
func (c InitializeOrderCommand) Client() *client.Client {
	return c.client
}

// Shipping returns the delivery address.
func (c InitializeOrderCommand) Shipping() kernel.Address {
	return c.shipping
}

// Billing returns the billing address. It equals Shipping for
// NewInitializeSameAddressCommand.
func (c InitializeOrderCommand) Billing() kernel.Address {
	return c.billing
}

// PaymentMethod returns how the client intends to pay.
func (c InitializeOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// CurrencyCode returns the ISO code of the order currency.
func (c InitializeOrderCommand) CurrencyCode() string {
	return c.currencyCode
}

// DiscountRate returns the discount applied to the order total.
func (c InitializeOrderCommand) DiscountRate() kernel.Rate {
	return c.discountRate
}

func (c *InitializeOrderCommand) setClient(buyer *client.Client) error {
	if err := buyer.Validate(); err != nil {
		return err
	}

	c.client = buyer
	return nil
}

func (c *InitializeOrderCommand) setShipping(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.shipping = address
	return nil
}

func (c *InitializeOrderCommand) setBilling(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.billing = address
	return nil
}

func (c *InitializeOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}

func (c *InitializeOrderCommand) setCurrencyCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ErrCurrencyCodeIsRequired
	}

	c.currencyCode = code
	return nil
}

func (c *InitializeOrderCommand) setDiscountRate(value decimal.Decimal) error {
	rate, err := kernel.NewRate("discount rate", value)
	if err != nil {
		return err
	}

	c.discountRate = rate
	return nil
}
