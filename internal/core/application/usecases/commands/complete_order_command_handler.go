package commands

import (
	"context"
	"errors"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/domain/services"
	"basket/internal/core/ports"
)

// CompleteOrderCommandHandler loads the order and hands it to the completion workflow.
// Whatever the strategy changed on the header is written back in the same transaction.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	workflow   ports.CompletionWorkflow
}

// NewCompleteOrderCommandHandler creates a handler that runs workflow inside a
// unit of work and commits only when the strategy succeeds.
func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	workflow ports.CompletionWorkflow,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		workflow:   workflow,
	}
}

// Handle fails with ErrOrderNotFound, ErrNotImplemented when no strategy
// handles the order's current status, or ErrInvalidTransition when the strategy
// asks for a status the lifecycle does not allow.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := loadOrder(ctx, orderRepo, cmd.OrderID())
	if err != nil {
		return err
	}

	err = h.workflow.Complete(ctx, aggregate)
	switch {
	case errors.Is(err, services.ErrNoCompletionStrategy):
		return ports.Fail(ports.ErrNotImplemented, err)
	case errors.Is(err, order.ErrStatusTransitionIsInvalid):
		return ports.Fail(ports.ErrInvalidTransition, err)
	case err != nil:
		return err
	}

	if err = saveOrder(ctx, orderRepo, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
