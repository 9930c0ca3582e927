// Package settings provides configuration values that orders snapshot at creation.
package settings

import (
	"context"

	"basket/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// StaticProvider implements ports.ConfigurationProvider from values read at startup.
type StaticProvider struct {
	vat kernel.Rate
}

// NewStaticProvider validates vatRate, e.g. "0.20" for 20%.
func NewStaticProvider(vatRate string) (*StaticProvider, error) {
	value, err := decimal.NewFromString(vatRate)
	if err != nil {
		return nil, err
	}

	vat, err := kernel.NewRate("vat rate", value)
	if err != nil {
		return nil, err
	}

	return &StaticProvider{vat: vat}, nil
}

// VatRate returns the configured rate. It never fails.
func (p *StaticProvider) VatRate(_ context.Context) (kernel.Rate, error) {
	return p.vat, nil
}
