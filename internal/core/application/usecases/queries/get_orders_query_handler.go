package queries

import (
	"context"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
)

// GetOrdersQueryHandler lists orders straight from the repository.
type GetOrdersQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrdersQueryHandler creates a handler loading aggregates from orders.
func NewGetOrdersQueryHandler(orders ports.OrderRepository) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{orders: orders}
}

// Handle never returns a nil slice on success.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		orders []*order.Order
		err    error
	)
	if query.Status() == order.Unknown {
		orders, err = h.orders.GetAll(ctx)
	} else {
		orders, err = h.orders.GetAllInStatus(ctx, query.Status())
	}
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = make([]*order.Order, 0)
	}
	return orders, nil
}
