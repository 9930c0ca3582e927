// Package catalogrepo persists the read-mostly catalog: currencies and products.
package catalogrepo

import (
	"basket/internal/core/domain/model/catalog"

	"github.com/shopspring/decimal"
)

// CurrencyDTO is a row of the currencies table.
type CurrencyDTO struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	Code             string `gorm:"type:varchar(3);not null;uniqueIndex"`
	ShortSign        string `gorm:"type:varchar(8);not null"`
	RoundingDecimals int32  `gorm:"type:smallint;not null"`
}

func (CurrencyDTO) TableName() string {
	return "currencies"
}

// ProductDTO is a row of the products table.
type ProductDTO struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	Code         string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CurrencyCode string          `gorm:"type:varchar(3);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// CurrencyFromDomain is used by seeding and by repositories that embed a currency.
func CurrencyFromDomain(c catalog.Currency) CurrencyDTO {
	return CurrencyDTO{
		ID:               c.ID(),
		Code:             c.Code(),
		ShortSign:        c.ShortSign(),
		RoundingDecimals: c.RoundingDecimals(),
	}
}

// CurrencyToDomain rebuilds a currency from its row.
func CurrencyToDomain(dto CurrencyDTO) (catalog.Currency, error) {
	return catalog.NewCurrency(dto.ID, dto.Code, dto.ShortSign, dto.RoundingDecimals)
}

func productFromDomain(p catalog.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID(),
		Code:         p.Code(),
		Name:         p.Name(),
		Description:  p.Description(),
		Price:        p.Price(),
		CurrencyCode: p.CurrencyCode(),
	}
}

func productToDomain(dto ProductDTO) (catalog.Product, error) {
	return catalog.NewProduct(dto.ID, dto.Code, dto.Name, dto.Description, dto.Price, dto.CurrencyCode)
}
