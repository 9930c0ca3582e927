package commands

import (
	"context"
	"errors"
	"time"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
)

// ClearOutCommandHandler deletes every line of an order one by one.
type ClearOutCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewClearOutCommandHandler creates a handler backed by uowFactory.
func NewClearOutCommandHandler(uowFactory OrderUoWFactory) ClearOutCommandHandler {
	return ClearOutCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle fails with ErrOrderNotFound, or ErrProductNotFound when the order was
// restored without a line collection. An order with zero lines clears successfully.
func (h ClearOutCommandHandler) Handle(ctx context.Context, cmd ClearOutCommand) error {
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

	removed, err := aggregate.ClearLines(h.now())
	if errors.Is(err, order.ErrLineCollectionIsAbsent) {
		return ports.Fail(ports.ErrProductNotFound, err)
	}
	if err != nil {
		return err
	}

	lineRepo := uow.OrderLineRepository()
	for _, line := range removed {
		if err = lineRepo.Delete(ctx, line); err != nil {
			return conflict(err)
		}
	}

	if err = saveOrder(ctx, orderRepo, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
