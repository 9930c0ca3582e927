package commands

import (
	"context"
	"errors"
	"fmt"

	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
	"basket/internal/pkg/errs"
)

var (
	ErrOrderIDIsInvalid      = errors.New("order id must be greater than 0")
	ErrProductCodeIsRequired = errors.New("product code is required")
)

// loadOrder reads the aggregate inside the unit of work, translating absence to ErrOrderNotFound.
func loadOrder(ctx context.Context, repo ports.OrderRepository, id int64) (*order.Order, error) {
	o, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ports.Fail(ports.ErrOrderNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	return o, nil
}

// saveOrder writes the order header under its version token.
func saveOrder(ctx context.Context, repo ports.OrderRepository, o *order.Order) error {
	return conflict(repo.Update(ctx, o))
}

// conflict reports a stale write as ErrConflict and passes other errors through.
func conflict(err error) error {
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return ports.Fail(ports.ErrConflict, err)
	}
	return err
}

func validateOrderID(id int64) error {
	if id <= 0 {
		return ErrOrderIDIsInvalid
	}
	return nil
}

func validateProductCode(code string) error {
	if code == "" {
		return ErrProductCodeIsRequired
	}
	return nil
}
