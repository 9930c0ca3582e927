package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"basket/internal/adapters/out/postgres/pgerr"
	"basket/internal/core/domain/model/catalog"
	"basket/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCurrencyRepository implements ports.CurrencyRepository using GORM.
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a repository over the currencies table.
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// GetByCode looks a currency up by its ISO code.
func (r *GormCurrencyRepository) GetByCode(ctx context.Context, code string) (catalog.Currency, error) {
	var dto CurrencyDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Currency{}, errs.NewObjectNotFoundError("currency", code)
		}
		return catalog.Currency{}, err
	}

	return CurrencyToDomain(dto)
}

// GetAll lists every currency ordered by code.
func (r *GormCurrencyRepository) GetAll(ctx context.Context) ([]catalog.Currency, error) {
	var dtos []CurrencyDTO
	if err := r.db.WithContext(ctx).Order("code").Find(&dtos).Error; err != nil {
		return nil, err
	}

	currencies := make([]catalog.Currency, 0, len(dtos))
	for _, dto := range dtos {
		c, err := CurrencyToDomain(dto)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}
	return currencies, nil
}

// Upsert inserts c or refreshes the stored row with the same code.
func (r *GormCurrencyRepository) Upsert(ctx context.Context, c catalog.Currency) error {
	dto := CurrencyFromDomain(c)
	dto.ID = 0
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"short_sign", "rounding_decimals"}),
	}).Create(&dto).Error
}

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a repository over the products table.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByCode looks a product up by its catalog code.
func (r *GormProductRepository) GetByCode(ctx context.Context, code string) (catalog.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Product{}, errs.NewObjectNotFoundError("product", code)
		}
		return catalog.Product{}, err
	}

	return productToDomain(dto)
}

// Add inserts a new product. A duplicate code is reported as an invalid value.
func (r *GormProductRepository) Add(ctx context.Context, p catalog.Product) error {
	dto := productFromDomain(p)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("product code", fmt.Errorf("%s already exists: %w", p.Code(), err))
		}
		return err
	}
	return nil
}

// Upsert inserts p or refreshes the stored row with the same code.
func (r *GormProductRepository) Upsert(ctx context.Context, p catalog.Product) error {
	dto := productFromDomain(p)
	dto.ID = 0
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price", "currency_code"}),
	}).Create(&dto).Error
}
