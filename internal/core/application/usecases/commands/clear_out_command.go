package commands

import (
	"errors"

	"basket/internal/pkg/guard"
)

var ErrClearOutCommandIsNotConstructed = errors.New(
	"ClearOutCommand must be created via NewClearOutCommand constructor",
)

// ClearOutCommand removes every line from an order.
type ClearOutCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewClearOutCommand creates a command that empties the order with orderID.
func NewClearOutCommand(orderID int64) (ClearOutCommand, error) {
	cmd := ClearOutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ClearOutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClearOutCommandIsNotConstructed if validation fails.
func (c ClearOutCommand) Validate() error {
	return c.guard.Validate(ErrClearOutCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to empty.
func (c ClearOutCommand) OrderID() int64 {
	return c.orderID
}

func (c *ClearOutCommand) setOrderID(id int64) error {
	if err := validateOrderID(id); err != nil {
		return err
	}

	c.orderID = id
	return nil
}
