package commands

import (
	"errors"
	"strings"

	"basket/internal/pkg/guard"
)

var ErrAddProductCommandIsNotConstructed = errors.New(
	"AddProductCommand must be created via NewAddProductCommand constructor",
)

// AddProductCommand puts a product on an order. Adding is not an upsert:
// a product already on the order is rejected.
//
// Example:
//
//	cmd, err := NewAddProductCommand(orderID, "PRODUCT-1", 2)
//	if err != nil {
//	    return fmt.Errorf("invalid product data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type AddProductCommand struct { //nolint:recvcheck //using for validation
	orderID     int64
	productCode string
	quantity    uint

	guard guard.ConstructorGuard
}

// NewAddProductCommand creates a command to add a product line.
// The quantity is taken as given; only SetQuantity enforces a positive value.
func NewAddProductCommand(orderID int64, productCode string, quantity uint) (AddProductCommand, error) {
	cmd := AddProductCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductCode(productCode),
	); err != nil {
		return AddProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddProductCommandIsNotConstructed if validation fails.
func (c AddProductCommand) Validate() error {
	return c.guard.Validate(ErrAddProductCommandIsNotConstructed)
}

// OrderID returns the identifier of the order receiving the line.
func (c AddProductCommand) OrderID() int64 {
	return c.orderID
}

// ProductCode returns the catalog code of the product to add.
func (c AddProductCommand) ProductCode() string {
	return c.productCode
}

// Quantity returns how many units the new line carries.
func (c AddProductCommand) Quantity() uint {
	return c.quantity
}

func (c *AddProductCommand) setOrderID(id int64) error {
	if err := validateOrderID(id); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *AddProductCommand) setProductCode(code string) error {
	code = strings.TrimSpace(code)
	if err := validateProductCode(code); err != nil {
		return err
	}

	c.productCode = code
	return nil
}
