package postgres

import (
	"context"
	"fmt"

	"basket/internal/adapters/out/postgres/catalogrepo"
	"basket/internal/adapters/out/postgres/clientrepo"
	"basket/internal/adapters/out/postgres/orderrepo"
	"basket/internal/adapters/out/postgres/outboxrepo"
	"basket/internal/core/domain/model/catalog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Migrate creates or updates every table of the basket schema.
// Referenced tables come first so foreign keys can be created.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogrepo.CurrencyDTO{},
		&catalogrepo.ProductDTO{},
		&clientrepo.ClientDTO{},
		&clientrepo.ContactDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&outboxrepo.MessageDTO{},
	)
}

// Seed upserts the reference catalog: EUR and two products priced in it.
// Running it twice leaves the catalog unchanged.
func Seed(ctx context.Context, db *gorm.DB) error {
	eur, err := catalog.NewCurrency(0, "EUR", "€", 2)
	if err != nil {
		return err
	}

	products := []struct {
		code, name, description string
		price                   int64
	}{
		{"PRODUCT-1", "Product 1", "First sample product", 100},
		{"PRODUCT-2", "Product 2", "Second sample product", 200},
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err = catalogrepo.NewGormCurrencyRepository(tx).Upsert(ctx, eur); err != nil {
			return fmt.Errorf("seed currency %s: %w", eur.Code(), err)
		}

		productRepo := catalogrepo.NewGormProductRepository(tx)
		for _, p := range products {
			product, productErr := catalog.NewProduct(0, p.code, p.name, p.description, decimal.NewFromInt(p.price), eur.Code())
			if productErr != nil {
				return productErr
			}
			if productErr = productRepo.Upsert(ctx, product); productErr != nil {
				return fmt.Errorf("seed product %s: %w", p.code, productErr)
			}
		}
		return nil
	})
}
