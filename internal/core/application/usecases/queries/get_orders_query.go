package queries

import (
	"errors"

	"basket/internal/core/domain/model/order"
	"basket/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists stored orders, optionally narrowed to one status.
type GetOrdersQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery lists every order.
func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOrdersInStatusQuery lists orders currently in status.
func NewGetOrdersInStatusQuery(status order.Status) (GetOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	return GetOrdersQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through one of the constructors.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status is order.Unknown when the query is not filtered.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}
