package catalog_test

import (
	"testing"

	"basket/internal/core/domain/model/catalog"
	"basket/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	t.Run("should create currency", func(t *testing.T) {
		c, err := catalog.NewCurrency(1, "eur", "€", 2)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, int64(1), c.ID())
		assert.Equal(t, "EUR", c.Code())
		assert.Equal(t, "€", c.ShortSign())
		assert.Equal(t, int32(2), c.RoundingDecimals())
	})

	t.Run("should collect every validation error", func(t *testing.T) {
		_, err := catalog.NewCurrency(-1, "", "", 12)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject codes that are not three letters", func(t *testing.T) {
		_, err := catalog.NewCurrency(1, "EURO", "€", 2)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCurrency_Round(t *testing.T) {
	eur, _ := catalog.NewCurrency(1, "EUR", "€", 2)
	jpy, _ := catalog.NewCurrency(2, "JPY", "¥", 0)

	assert.Equal(t, "10.13", eur.Round(decimal.RequireFromString("10.125")).String())
	assert.Equal(t, "11", jpy.Round(decimal.RequireFromString("10.5")).String())
	assert.Equal(t, "600.00 €", eur.Format(decimal.NewFromInt(600)))
}

func TestCurrency_ZeroValue(t *testing.T) {
	var c catalog.Currency

	assert.Equal(t, catalog.ErrCurrencyIsNotConstructed, c.Validate())
}
