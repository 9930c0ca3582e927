package queries

import (
	"errors"

	"basket/internal/core/domain/model/order"
	"basket/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery summarizes every order that has not been fulfilled yet.
//
// Example:
//
//	handler := NewGetOpenOrdersQueryHandler(db)
//	summaries, err := handler.Handle(ctx, NewGetOpenOrdersQuery())
//	if err != nil {
//	    return err
//	}
//	for _, s := range summaries {
//	    fmt.Printf("order %d of %s: %d lines, %s %s\n", s.ID, s.ClientCode, s.Lines, s.Total, s.CurrencyCode)
//	}
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates the query. It takes no parameters.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOpenOrdersQueryIsNotConstructed if validation fails.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// OrderSummary is a flat read model of one order. Total is the sum of
// quantity times unit cost, before discount and VAT.
type OrderSummary struct {
	ID           int64
	ClientCode   string
	Status       order.Status
	Lines        int
	Total        decimal.Decimal
	CurrencyCode string
}
