// Package ports defines the contracts between the basket core and its infrastructure.
// Repositories, the unit of work, catalog lookups and the configuration provider are
// declared here so the application layer depends on interfaces only.
package ports

import (
	"context"

	"basket/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add inserts a new order and assigns the storage id to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order header. The write is conditional on the aggregate's
	// version; a stale version fails with errs.ErrVersionIsInvalid.
	// On success the aggregate's version is incremented.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads the complete aggregate: header, lines, client and currency.
	// Returns errs.ErrObjectNotFound when no order has this id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAll loads every stored order.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus loads every order in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}

// OrderLineRepository records explicit write intents for order lines.
// Callers decide which lines were added, changed or removed; nothing is diffed.
type OrderLineRepository interface {
	// Add inserts line under orderID and assigns the storage id to the line.
	Add(ctx context.Context, orderID int64, line *order.OrderLine) error

	// Update writes quantity and timestamp of a stored line.
	Update(ctx context.Context, line *order.OrderLine) error

	// Delete removes a stored line.
	Delete(ctx context.Context, line *order.OrderLine) error
}
