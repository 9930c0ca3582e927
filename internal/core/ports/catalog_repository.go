package ports

import (
	"context"

	"basket/internal/core/domain/model/catalog"
	"basket/internal/core/domain/model/kernel"
)

// CurrencyRepository is a read-only catalog lookup.
// Absence is reported as errs.ErrObjectNotFound.
type CurrencyRepository interface {
	GetByCode(ctx context.Context, code string) (catalog.Currency, error)
}

// ProductRepository is a read-only catalog lookup.
// Absence is reported as errs.ErrObjectNotFound.
type ProductRepository interface {
	GetByCode(ctx context.Context, code string) (catalog.Product, error)
}

// ConfigurationProvider supplies settings that orders snapshot at creation.
type ConfigurationProvider interface {
	VatRate(ctx context.Context) (kernel.Rate, error)
}
