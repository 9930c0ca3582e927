package commands

import (
	"context"
	"errors"
	"time"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
)

// RemoveProductCommandHandler deletes exactly one line from an order.
type RemoveProductCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewRemoveProductCommandHandler creates a handler backed by uowFactory.
func NewRemoveProductCommandHandler(uowFactory OrderUoWFactory) RemoveProductCommandHandler {
	return RemoveProductCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle fails with ErrOrderNotFound, or ErrProductNotFound when the order has no
// lines or no line for the product.
func (h RemoveProductCommandHandler) Handle(ctx context.Context, cmd RemoveProductCommand) error {
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

	removed, err := aggregate.RemoveLine(cmd.ProductCode(), h.now())
	if errors.Is(err, order.ErrLineCollectionIsAbsent) || errors.Is(err, order.ErrLineNotFound) {
		return ports.Fail(ports.ErrProductNotFound, err)
	}
	if err != nil {
		return err
	}

	if err = uow.OrderLineRepository().Delete(ctx, removed); err != nil {
		return conflict(err)
	}

	if err = saveOrder(ctx, orderRepo, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
