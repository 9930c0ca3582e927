package commands

import (
	"errors"
	"fmt"
	"strings"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
	"basket/internal/pkg/guard"
)

var ErrSetQuantityCommandIsNotConstructed = errors.New(
	"SetQuantityCommand must be created via NewSetQuantityCommand constructor",
)

// SetQuantityCommand overwrites the quantity of an existing line.
//
// Quantity is checked before anything else: a non-positive value fails with
// ports.ErrInvalidQuantity even for an order that does not exist.
//
// Example:
//
//	cmd, err := NewSetQuantityCommand(orderID, "PRODUCT-2", 2)
//	if errors.Is(err, ports.ErrInvalidQuantity) {
//	    // quantity must be positive
//	}
type SetQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID     int64
	productCode string
	quantity    uint

	guard guard.ConstructorGuard
}

// NewSetQuantityCommand creates a command that overwrites a line's quantity.
// A quantity below one fails with ports.ErrInvalidQuantity.
func NewSetQuantityCommand(orderID int64, productCode string, quantity int) (SetQuantityCommand, error) {
	if quantity <= 0 {
		return SetQuantityCommand{}, ports.Fail(ports.ErrInvalidQuantity,
			fmt.Errorf("%w: got %d", order.ErrQuantityIsInvalid, quantity))
	}

	cmd := SetQuantityCommand{
		quantity: uint(quantity),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductCode(productCode),
	); err != nil {
		return SetQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetQuantityCommandIsNotConstructed if validation fails.
func (c SetQuantityCommand) Validate() error {
	return c.guard.Validate(ErrSetQuantityCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c SetQuantityCommand) OrderID() int64 {
	return c.orderID
}

// ProductCode returns the code of the line to change.
func (c SetQuantityCommand) ProductCode() string {
	return c.productCode
}

// Quantity returns the new quantity, always at least one.
func (c SetQuantityCommand) Quantity() uint {
	return c.quantity
}

func (c *SetQuantityCommand) setOrderID(id int64) error {
	if err := validateOrderID(id); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *SetQuantityCommand) setProductCode(code string) error {
	code = strings.TrimSpace(code)
	if err := validateProductCode(code); err != nil {
		return err
	}

	c.productCode = code
	return nil
}
