package commands

import (
	"errors"
	"strings"

	"basket/internal/pkg/guard"
)

var ErrRemoveProductCommandIsNotConstructed = errors.New(
	"RemoveProductCommand must be created via NewRemoveProductCommand constructor",
)

// RemoveProductCommand takes the line for one product off an order.
type RemoveProductCommand struct { //nolint:recvcheck //using for validation
	orderID     int64
	productCode string

	guard guard.ConstructorGuard
}

// NewRemoveProductCommand creates a command that drops productCode from the order.
// Returns an error if orderID is not positive or productCode is blank.
func NewRemoveProductCommand(orderID int64, productCode string) (RemoveProductCommand, error) {
	cmd := RemoveProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductCode(productCode),
	); err != nil {
		return RemoveProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveProductCommandIsNotConstructed if validation fails.
func (c RemoveProductCommand) Validate() error {
	return c.guard.Validate(ErrRemoveProductCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c RemoveProductCommand) OrderID() int64 {
	return c.orderID
}

// ProductCode returns the code of the line to remove.
func (c RemoveProductCommand) ProductCode() string {
	return c.productCode
}

func (c *RemoveProductCommand) setOrderID(id int64) error {
	if err := validateOrderID(id); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *RemoveProductCommand) setProductCode(code string) error {
	code = strings.TrimSpace(code)
	if err := validateProductCode(code); err != nil {
		return err
	}

	c.productCode = code
	return nil
}
