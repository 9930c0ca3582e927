package commands

import (
	"errors"
	"fmt"

	"basket/internal/pkg/errs"
	"basket/internal/pkg/guard"
)

// DefaultRelayBatchSize bounds how many outbox messages one relay run publishes.
const DefaultRelayBatchSize = 100

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes one batch of pending outbox messages.
//
// Example:
//
//	cmd, _ := NewRelayOutboxCommand(DefaultRelayBatchSize)
//	sent, err := handler.Handle(ctx, cmd)
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewRelayOutboxCommand creates a command that relays at most batchSize messages.
// Returns an error if batchSize is not positive.
func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	cmd := RelayOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBatchSize(batchSize); err != nil {
		return RelayOutboxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRelayOutboxCommandIsNotConstructed if validation fails.
func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

// BatchSize returns the maximum number of messages relayed per run.
func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c *RelayOutboxCommand) setBatchSize(size int) error {
	if size <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("batch size", fmt.Errorf("%d is not positive", size))
	}

	c.batchSize = size
	return nil
}
