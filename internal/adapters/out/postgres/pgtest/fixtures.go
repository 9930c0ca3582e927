package pgtest

import (
	"context"
	"time"

	"basket/internal/adapters/out/postgres/catalogrepo"
	"basket/internal/adapters/out/postgres/clientrepo"
	"basket/internal/core/domain/model/catalog"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// StoreEUR upserts the euro and returns it with its storage id.
func (d *Database) StoreEUR(ctx context.Context) (catalog.Currency, error) {
	eur, err := catalog.NewCurrency(0, "EUR", "€", 2)
	if err != nil {
		return catalog.Currency{}, err
	}

	repo := catalogrepo.NewGormCurrencyRepository(d.DB)
	if err = repo.Upsert(ctx, eur); err != nil {
		return catalog.Currency{}, err
	}
	return repo.GetByCode(ctx, "EUR")
}

// StoreProduct upserts a product priced in EUR.
func (d *Database) StoreProduct(ctx context.Context, code string, price int64) (catalog.Product, error) {
	p, err := catalog.NewProduct(0, code, code, "", decimal.NewFromInt(price), "EUR")
	if err != nil {
		return catalog.Product{}, err
	}

	repo := catalogrepo.NewGormProductRepository(d.DB)
	if err = repo.Upsert(ctx, p); err != nil {
		return catalog.Product{}, err
	}
	return repo.GetByCode(ctx, code)
}

// StoreClient inserts a client with one email contact.
func (d *Database) StoreClient(ctx context.Context, code string) (*client.Client, error) {
	email, err := client.NewContact(client.Email, code+"@basket.test")
	if err != nil {
		return nil, err
	}

	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	c, err := client.NewClient(code, "Jane", "Doe", &birth, client.Female, []client.Contact{email})
	if err != nil {
		return nil, err
	}

	if err = clientrepo.NewGormClientRepository(d.DB).Add(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewOrder builds an unsaved order in Berlin paid by wire transfer.
func NewOrder(owner *client.Client, currency catalog.Currency, now time.Time) (*order.Order, error) {
	addr, err := kernel.NewAddress("DE", "Berlin", "Berlin", "10115", "Invalidenstraße 1")
	if err != nil {
		return nil, err
	}
	billing, err := order.NewBillingInfo(addr, order.WireTransfer, now)
	if err != nil {
		return nil, err
	}
	shipping, err := order.NewShippingInfo(addr, now)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewRate("discount rate", decimal.RequireFromString("0.10"))
	if err != nil {
		return nil, err
	}
	vat, err := kernel.NewRate("vat rate", decimal.RequireFromString("0.20"))
	if err != nil {
		return nil, err
	}

	return order.NewOrder(owner, currency, discount, vat, billing, shipping, now)
}
