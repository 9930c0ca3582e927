package commands

import (
	"context"
	"errors"
	"time"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
)

// SetQuantityCommandHandler overwrites the quantity of one line.
type SetQuantityCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewSetQuantityCommandHandler creates a handler backed by uowFactory.
func NewSetQuantityCommandHandler(uowFactory OrderUoWFactory) SetQuantityCommandHandler {
	return SetQuantityCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle fails with ErrOrderNotFound when the order or its line collection is
// missing, and with ErrProductNotFound when no line matches.
func (h SetQuantityCommandHandler) Handle(ctx context.Context, cmd SetQuantityCommand) error {
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

	line, err := aggregate.SetLineQuantity(cmd.ProductCode(), cmd.Quantity(), h.now())
	switch {
	case errors.Is(err, order.ErrLineCollectionIsAbsent):
		return ports.Fail(ports.ErrOrderNotFound, err)
	case errors.Is(err, order.ErrLineNotFound):
		return ports.Fail(ports.ErrProductNotFound, err)
	case errors.Is(err, order.ErrQuantityIsInvalid):
		return ports.Fail(ports.ErrInvalidQuantity, err)
	case err != nil:
		return err
	}

	if err = uow.OrderLineRepository().Update(ctx, line); err != nil {
		return conflict(err)
	}

	if err = saveOrder(ctx, orderRepo, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
