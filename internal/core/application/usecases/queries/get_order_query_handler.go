package queries

import (
	"context"
	"errors"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
	"basket/internal/pkg/errs"
)

// GetOrderQueryHandler reads an order straight from the repository.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler loading aggregates from orders.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns ports.ErrOrderNotFound when no order has the id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ports.Fail(ports.ErrOrderNotFound, err)
	}
	if err != nil {
		return nil, err
	}

	return o, nil
}
