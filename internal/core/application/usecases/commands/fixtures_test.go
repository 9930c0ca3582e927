package commands_test

import (
	"testing"
	"time"

	"basket/internal/core/domain/model/catalog"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.NewClient("4829", "John", "Doe", nil, client.Male, nil)
	require.NoError(t, err)
	return c
}

func newAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress("DE", "Berlin", "Berlin", "10115", "Wittenauer Straße")
	require.NoError(t, err)
	return addr
}

func newEUR(t *testing.T) catalog.Currency {
	t.Helper()
	eur, err := catalog.NewCurrency(1, "EUR", "€", 2)
	require.NoError(t, err)
	return eur
}

func newProduct(t *testing.T, code string, price int64) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(1, code, code, "", decimal.NewFromInt(price), "EUR")
	require.NoError(t, err)
	return p
}

func newVat(t *testing.T) kernel.Rate {
	t.Helper()
	vat, err := kernel.NewRate("vat rate", decimal.RequireFromString("0.20"))
	require.NoError(t, err)
	return vat
}

// newStoredOrder returns an order with id 7 carrying one line per product code at price 100.
func newStoredOrder(t *testing.T, productCodes ...string) *order.Order {
	t.Helper()
	lines := make([]*order.OrderLine, 0, len(productCodes))
	for i, code := range productCodes {
		line, err := order.RestoreOrderLine(int64(i+1), code, 1, decimal.NewFromInt(100), "EUR", fixedNow)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return restoreOrder(t, lines)
}

// newOrderWithoutLines returns an order restored without a line collection.
func newOrderWithoutLines(t *testing.T) *order.Order {
	t.Helper()
	return restoreOrder(t, nil)
}

func restoreOrder(t *testing.T, lines []*order.OrderLine) *order.Order {
	t.Helper()
	addr := newAddress(t)
	billing, err := order.NewBillingInfo(addr, order.WireTransfer, fixedNow)
	require.NoError(t, err)
	shipping, err := order.NewShippingInfo(addr, fixedNow)
	require.NoError(t, err)

	o, err := order.RestoreOrder(7, newClient(t), newEUR(t), kernel.ZeroRate(), newVat(t),
		order.Initialized, billing, shipping, lines, fixedNow, 1)
	require.NoError(t, err)
	return o
}
