package commands

import (
	"context"
	"errors"
	"time"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
	"basket/internal/pkg/errs"
)

// AddProductCommandHandler appends a line priced at the product's current catalog price.
type AddProductCommandHandler struct {
	uowFactory OrderUoWFactory
	products   ports.ProductRepository
	now        func() time.Time
}

// NewAddProductCommandHandler creates a handler that looks products up in products
// and writes lines through units of work from uowFactory.
func NewAddProductCommandHandler(uowFactory OrderUoWFactory, products ports.ProductRepository) AddProductCommandHandler {
	return AddProductCommandHandler{
		uowFactory: uowFactory,
		products:   products,
		now:        time.Now,
	}
}

// Handle fails with ErrOrderNotFound, ErrProductNotFound when the catalog has no such
// product, ErrCurrencyMismatch when the product is priced in another currency, or
// ErrProductAlreadyExists when the order already carries it.
func (h AddProductCommandHandler) Handle(ctx context.Context, cmd AddProductCommand) error {
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

	product, err := h.products.GetByCode(ctx, cmd.ProductCode())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ports.Fail(ports.ErrProductNotFound, err)
	}
	if err != nil {
		return err
	}

	line, err := aggregate.AddLine(product, cmd.Quantity(), h.now())
	switch {
	case errors.Is(err, order.ErrLineAlreadyExists):
		return ports.Fail(ports.ErrProductAlreadyExists, err)
	case errors.Is(err, order.ErrCurrencyMismatch):
		return ports.Fail(ports.ErrCurrencyMismatch, err)
	case err != nil:
		return err
	}

	if err = uow.OrderLineRepository().Add(ctx, aggregate.ID(), line); err != nil {
		return conflict(err)
	}

	if err = saveOrder(ctx, orderRepo, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
