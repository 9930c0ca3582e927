package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
	"basket/internal/pkg/errs"
)

// InitializeOrderCommandHandler creates an order in Initialized status with no lines.
//
// Example:
//
//	handler := NewInitializeOrderCommandHandler(uowFactory, currencies, settings)
//	orderID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrCurrencyNotFound) {
//	    // unknown currency code
//	}
type InitializeOrderCommandHandler struct {
	uowFactory UoWFactory
	currencies ports.CurrencyRepository
	settings   ports.ConfigurationProvider
	now        func() time.Time
}

// NewInitializeOrderCommandHandler creates a handler for basket creation.
// Currencies come from the catalog; the VAT rate comes from settings and is
// copied onto the order.
func NewInitializeOrderCommandHandler(
	uowFactory UoWFactory,
	currencies ports.CurrencyRepository,
	settings ports.ConfigurationProvider,
) InitializeOrderCommandHandler {
	return InitializeOrderCommandHandler{
		uowFactory: uowFactory,
		currencies: currencies,
		settings:   settings,
		now:        time.Now,
	}
}

// Handle stores the new order and returns the id assigned by storage.
func (h InitializeOrderCommandHandler) Handle(ctx context.Context, cmd InitializeOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	currency, err := h.currencies.GetByCode(ctx, cmd.CurrencyCode())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return 0, ports.Fail(ports.ErrCurrencyNotFound, err)
	}
	if err != nil {
		return 0, err
	}

	vatRate, err := h.settings.VatRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("read vat rate: %w", err)
	}

	buyer, err := h.resolveClient(ctx, uow.ClientRepository(), cmd.Client())
	if err != nil {
		return 0, err
	}

	now := h.now()
	billing, err := order.NewBillingInfo(cmd.Billing(), cmd.PaymentMethod(), now)
	if err != nil {
		return 0, err
	}
	shipping, err := order.NewShippingInfo(cmd.Shipping(), now)
	if err != nil {
		return 0, err
	}

	aggregate, err := order.NewOrder(buyer, currency, cmd.DiscountRate(), vatRate, billing, shipping, now)
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return aggregate.ID(), nil
}

// resolveClient reuses a stored client with the same code or registers the supplied one.
// Losing a registration race to another order for the same code is ports.ErrConflict.
func (h InitializeOrderCommandHandler) resolveClient(
	ctx context.Context,
	repo ports.ClientRepository,
	supplied *client.Client,
) (*client.Client, error) {
	stored, err := repo.GetByCode(ctx, supplied.Code())
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = repo.Add(ctx, supplied); err != nil {
		return nil, conflict(err)
	}
	return supplied, nil
}
